package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterministicGivenSameSeedAndConsumedCount(t *testing.T) {
	a := RNGState{}
	a.SetSeed("replay-seed")
	b := RNGState{}
	b.SetSeed("replay-seed")

	for i := 0; i < 20; i++ {
		ra := a.RollD20("attack")
		rb := b.RollD20("attack")
		require.Equal(t, ra, rb, "roll %d must match for identical seed and consumption history", i)
	}
}

func TestRNGDifferentSeedsDivergeEventually(t *testing.T) {
	a := RNGState{}
	a.SetSeed("seed-one")
	b := RNGState{}
	b.SetSeed("seed-two")

	diverged := false
	for i := 0; i < 50; i++ {
		if a.RollD20("x") != b.RollD20("x") {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "two distinct seeds should not draw an identical stream of 50 d20s")
}

func TestRNGRollD20Range(t *testing.T) {
	r := RNGState{}
	r.SetSeed("range-check")
	for i := 0; i < 200; i++ {
		v := r.RollD20("attack")
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 20)
	}
}

func TestRNGRollDiceSumsCorrectNumberOfDice(t *testing.T) {
	r := RNGState{}
	r.SetSeed("dice-check")
	v := r.RollDice(3, 6, "damage")
	assert.GreaterOrEqual(t, v, 3)
	assert.LessOrEqual(t, v, 18)
}

func TestRNGRecordsProvenancePerRoll(t *testing.T) {
	r := RNGState{}
	r.SetSeed("prov")
	r.RollD20("attack")
	r.RollDice(2, 6, "damage")
	require.Len(t, r.LastRolls, 2)
	assert.Equal(t, "1d20", r.LastRolls[0].Formula)
	assert.Equal(t, "attack", r.LastRolls[0].Source)
	assert.Equal(t, "2d6", r.LastRolls[1].Formula)
	assert.Equal(t, int64(1), r.LastRolls[0].Timestamp)
	assert.Equal(t, int64(2), r.LastRolls[1].Timestamp)
}

func TestRNGSetSeedResetsConsumedCounterNotLog(t *testing.T) {
	r := RNGState{}
	r.SetSeed("first")
	r.RollD20("attack")
	r.RollD20("attack")
	require.Equal(t, uint64(2), r.RollsConsumed)

	r.SetSeed("second")
	assert.Equal(t, uint64(0), r.RollsConsumed)
	assert.Len(t, r.LastRolls, 2, "roll log is append-only across reseeding")
}

func TestRNGRollFormulaUsesEngineStream(t *testing.T) {
	r := RNGState{}
	r.SetSeed("formula")
	result, err := r.RollFormula("2d6+3", "weapon")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Total, 5)
	assert.LessOrEqual(t, result.Total, 15)
	require.Len(t, r.LastRolls, 1)
	assert.Equal(t, "2d6+3", r.LastRolls[0].Formula)
}
