package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

func TestNewHomebrewCompilesFormulas(t *testing.T) {
	formulas := map[string]AbilityFormula{
		"firebolt": {EffectExpr: "10 + strength", CostExpr: "2"},
	}
	h, err := NewHomebrew(formulas)
	require.NoError(t, err)
	require.NotNil(t, h)
}

func TestNewHomebrewRejectsInvalidFormula(t *testing.T) {
	formulas := map[string]AbilityFormula{
		"bad": {EffectExpr: "this is not an expr"},
	}
	_, err := NewHomebrew(formulas)
	assert.Error(t, err)
}

func TestHomebrewAbilityResolveAppliesEffectToTarget(t *testing.T) {
	formulas := map[string]AbilityFormula{
		"firebolt": {EffectExpr: "10 + strength"},
	}
	h, err := NewHomebrew(formulas)
	require.NoError(t, err)

	caster := newEntity("caster", 10, 10)
	strength := 4
	caster.Stats.Strength = &strength
	target := newEntity("target", 20, 10)

	_, err = h.Abilities().Resolve(&engine.GameState{}, caster, "firebolt", target)
	require.NoError(t, err)
	assert.Equal(t, 6, target.Stats.HPCurrent, "20 hp - (10 + 4 strength) effect = 6")
}

func TestHomebrewAbilityResolveClampsHPAtZero(t *testing.T) {
	formulas := map[string]AbilityFormula{
		"nuke": {EffectExpr: "999"},
	}
	h, err := NewHomebrew(formulas)
	require.NoError(t, err)

	caster := newEntity("caster", 10, 10)
	target := newEntity("target", 5, 10)

	_, err = h.Abilities().Resolve(&engine.GameState{}, caster, "nuke", target)
	require.NoError(t, err)
	assert.Equal(t, 0, target.Stats.HPCurrent)
}

func TestHomebrewAbilitiesHaveNoCooldown(t *testing.T) {
	h, err := NewHomebrew(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Abilities().Cooldown("anything"))
}

func TestHomebrewCombatAttackRollUsesTwoD10(t *testing.T) {
	state := &engine.GameState{RNG: engine.RNGState{Mode: engine.RNGManual}}
	attacker := newEntity("a", 10, 12)
	target := newEntity("t", 10, 12)
	result := homebrewCombat{}.AttackRoll(state, attacker, target)
	assert.GreaterOrEqual(t, result.Raw, 2)
	assert.LessOrEqual(t, result.Raw, 20)
	assert.False(t, result.Disadvantage)
}

func TestHomebrewDamageIsFlatAndUnmodified(t *testing.T) {
	d := homebrewDamage{}
	target := newEntity("t", 10, 12)
	assert.Equal(t, 10, d.Reduction(10, target, "physical"))
	assert.Equal(t, 10, d.Resistance(10, target, "physical"))
}
