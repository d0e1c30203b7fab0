package resolvers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

func TestRollInitiativeEntersCombatAtRoundOne(t *testing.T) {
	state := freshState()
	seedRNG(state, "initiative-seed")

	action := engine.Action{Type: engine.ActionRollInitiative}
	result := Apply(state, action, testDeps())
	require.True(t, result.OK, "unexpected rejection: %v", result.Errors)

	next := result.NextState
	assert.Equal(t, engine.ModeCombat, next.Combat.Mode)
	assert.Equal(t, uint32(1), next.Combat.Round)
	assert.Len(t, next.Combat.InitiativeOrder, 2)
	assert.Equal(t, next.Combat.InitiativeOrder[0], *next.Combat.ActiveEntityID)
}

func TestRollInitiativeExcludesDeadAndObjectEntities(t *testing.T) {
	state := freshState()
	seedRNG(state, "initiative-seed")
	state.Entities.NPCs[0].AddCondition(engine.CondDead)
	state.Entities.Objects = []engine.Entity{{ID: "chest", Kind: engine.EntityObject, Stats: engine.Stats{HPCurrent: 1, HPMax: 1}}}

	action := engine.Action{Type: engine.ActionRollInitiative}
	result := Apply(state, action, testDeps())
	require.True(t, result.OK)
	assert.Equal(t, []string{"p1"}, result.NextState.Combat.InitiativeOrder)
}

func TestRollInitiativeRejectsWhenAlreadyInCombat(t *testing.T) {
	state := combatState()
	action := engine.Action{Type: engine.ActionRollInitiative}
	result := Apply(state, action, testDeps())
	require.False(t, result.OK)
	assert.Contains(t, result.Errors, "COMBAT_ALREADY")
}

func TestRollInitiativeIsDeterministicForSameSeed(t *testing.T) {
	a := freshState()
	seedRNG(a, "same-seed")
	b := freshState()
	seedRNG(b, "same-seed")

	action := engine.Action{Type: engine.ActionRollInitiative}
	resultA := Apply(a, action, testDeps())
	resultB := Apply(b, action, testDeps())
	require.True(t, resultA.OK)
	require.True(t, resultB.OK)
	assert.Equal(t, resultA.NextState.Combat.InitiativeOrder, resultB.NextState.Combat.InitiativeOrder)
}
