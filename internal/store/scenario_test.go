package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

func TestParseScenarioYAMLAcceptsSatisfiedConstraint(t *testing.T) {
	doc, err := ParseScenarioYAML([]byte(`
name: goblin-ambush
tags: [combat, low-level]
engine_version_constraint: ">=1.0.0,<2.0.0"
metadata:
  difficulty: hard
state:
  map:
    id: m1
    grid:
      kind: square
      size: { w: 10, h: 10 }
      cell_size: 5
  entities:
    players: []
    npcs: []
    objects: []
  combat:
    mode: exploration
    round: 0
    initiative_order: []
  rng:
    mode: manual
`))
	require.NoError(t, err)
	assert.Equal(t, "goblin-ambush", doc.Name)
	assert.Equal(t, []string{"combat", "low-level"}, doc.Tags)
	assert.Equal(t, engine.DifficultyHard, DifficultyFromMetadata(doc.Metadata))
}

func TestParseScenarioYAMLRejectsUnsatisfiedConstraint(t *testing.T) {
	_, err := ParseScenarioYAML([]byte(`
name: future-scenario
engine_version_constraint: ">=99.0.0"
state:
  map: { id: m1 }
`))
	assert.Error(t, err)
}

func TestParseScenarioYAMLRejectsMalformedConstraint(t *testing.T) {
	_, err := ParseScenarioYAML([]byte(`
name: bad-constraint
engine_version_constraint: "not a semver range"
state:
  map: { id: m1 }
`))
	assert.Error(t, err)
}

func TestParseScenarioYAMLRejectsMalformedDocument(t *testing.T) {
	_, err := ParseScenarioYAML([]byte("not: [valid yaml"))
	assert.Error(t, err)
}

func TestParseScenarioYAMLAllowsMissingConstraint(t *testing.T) {
	doc, err := ParseScenarioYAML([]byte(`
name: no-constraint
state:
  map: { id: m1 }
`))
	require.NoError(t, err)
	assert.Equal(t, "no-constraint", doc.Name)
}

func TestDifficultyFromMetadataDefaultsToNormalWhenMissing(t *testing.T) {
	assert.Equal(t, engine.DifficultyNormal, DifficultyFromMetadata(nil))
	assert.Equal(t, engine.DifficultyNormal, DifficultyFromMetadata(map[string]interface{}{}))
}

func TestDifficultyFromMetadataAcceptsStringValues(t *testing.T) {
	assert.Equal(t, engine.DifficultyEasy, DifficultyFromMetadata(map[string]interface{}{"difficulty": "easy"}))
	assert.Equal(t, engine.DifficultyHard, DifficultyFromMetadata(map[string]interface{}{"difficulty": "hard"}))
	assert.Equal(t, engine.DifficultyDeadly, DifficultyFromMetadata(map[string]interface{}{"difficulty": "deadly"}))
}

func TestDifficultyFromMetadataAcceptsNumericTiers(t *testing.T) {
	assert.Equal(t, engine.DifficultyEasy, DifficultyFromMetadata(map[string]interface{}{"difficulty": 1}))
	assert.Equal(t, engine.DifficultyNormal, DifficultyFromMetadata(map[string]interface{}{"difficulty": 2}))
	assert.Equal(t, engine.DifficultyHard, DifficultyFromMetadata(map[string]interface{}{"difficulty": 3}))
	assert.Equal(t, engine.DifficultyDeadly, DifficultyFromMetadata(map[string]interface{}{"difficulty": 4}))
}

func TestDifficultyFromMetadataFallsBackOnUnrecognizedValue(t *testing.T) {
	assert.Equal(t, engine.DifficultyNormal, DifficultyFromMetadata(map[string]interface{}{"difficulty": "unrecognized"}))
}
