package resolvers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

func combatState() *engine.GameState {
	state := freshState()
	state.Combat = engine.CombatState{
		Mode:            engine.ModeCombat,
		Round:           1,
		InitiativeOrder: []string{"p1", "n1"},
	}
	active := "p1"
	state.Combat.ActiveEntityID = &active
	return state
}

func TestEndTurnAdvancesToNextEntity(t *testing.T) {
	state := combatState()
	action := engine.Action{Type: engine.ActionEndTurn, EntityID: "p1"}
	result := Apply(state, action, testDeps())
	require.True(t, result.OK, "unexpected rejection: %v", result.Errors)
	assert.Equal(t, "n1", *result.NextState.Combat.ActiveEntityID)
	assert.Equal(t, uint32(1), result.NextState.Combat.Round)
}

func TestEndTurnWrapsAndIncrementsRound(t *testing.T) {
	state := combatState()
	active := "n1"
	state.Combat.ActiveEntityID = &active
	action := engine.Action{Type: engine.ActionEndTurn, EntityID: "n1"}
	result := Apply(state, action, testDeps())
	require.True(t, result.OK)
	assert.Equal(t, "p1", *result.NextState.Combat.ActiveEntityID)
	assert.Equal(t, uint32(2), result.NextState.Combat.Round)
}

func TestEndTurnSkipsDeadEntities(t *testing.T) {
	state := combatState()
	state.Entities.NPCs[0].AddCondition(engine.CondDead)
	state.Entities.Players = append(state.Entities.Players, engine.Entity{
		ID: "p2", Kind: engine.EntityPlayer, Position: engine.Position{X: 5, Y: 5},
		Stats: engine.Stats{HPCurrent: 5, HPMax: 5},
	})
	// A second, living npc keeps combat going so the turn hands off.
	state.Entities.NPCs = append(state.Entities.NPCs, engine.Entity{
		ID: "n2", Kind: engine.EntityNPC, Position: engine.Position{X: 7, Y: 7},
		Stats: engine.Stats{HPCurrent: 5, HPMax: 5},
	})
	state.Combat.InitiativeOrder = []string{"p1", "n1", "p2", "n2"}

	action := engine.Action{Type: engine.ActionEndTurn, EntityID: "p1"}
	result := Apply(state, action, testDeps())
	require.True(t, result.OK)
	assert.Equal(t, "p2", *result.NextState.Combat.ActiveEntityID, "the dead npc's slot must be skipped")
}

func TestEndTurnRejectsOutsideCombat(t *testing.T) {
	state := freshState()
	action := engine.Action{Type: engine.ActionEndTurn, EntityID: "p1"}
	result := Apply(state, action, testDeps())
	require.False(t, result.OK)
	assert.Contains(t, result.Errors, "COMBAT_ALREADY")
}

func TestEndTurnRejectsWhenNotYourTurn(t *testing.T) {
	state := combatState()
	action := engine.Action{Type: engine.ActionEndTurn, EntityID: "n1"}
	result := Apply(state, action, testDeps())
	require.False(t, result.OK)
	assert.Contains(t, result.Errors, "NOT_YOUR_TURN")
}

func TestEndTurnEndsCombatWhenOneSideWiped(t *testing.T) {
	state := combatState()
	state.Entities.NPCs[0].AddCondition(engine.CondDead)

	action := engine.Action{Type: engine.ActionEndTurn, EntityID: "p1"}
	result := Apply(state, action, testDeps())
	require.True(t, result.OK)
	require.Len(t, result.Events, 1)
	payload, ok := result.Events[0].Payload.(engine.CombatEndedPayload)
	require.True(t, ok)
	assert.Equal(t, "players", payload.Winner)
	assert.Equal(t, engine.ModeExploration, result.NextState.Combat.Mode)
	assert.Nil(t, result.NextState.Combat.ActiveEntityID)
}
