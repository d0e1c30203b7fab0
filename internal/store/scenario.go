package store

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

// EngineVersion is the running build's version, checked against a
// scenario's recorded engine_version_constraint before it is loaded.
const EngineVersion = "1.0.0"

// ScenarioDocument is the YAML authoring format for a scenario bundle:
// human-edited metadata plus the embedded starting GameState.
type ScenarioDocument struct {
	Name                    string                 `yaml:"name"`
	Tags                    []string               `yaml:"tags"`
	EngineVersionConstraint string                 `yaml:"engine_version_constraint"`
	Metadata                map[string]interface{} `yaml:"metadata"`
	State                   engine.GameState       `yaml:"state"`
}

// ParseScenarioYAML decodes a scenario authoring document and checks
// its engine_version_constraint (a semver range like ">=1.0.0,<2.0.0")
// against EngineVersion, so a scenario authored against an
// incompatible engine fails loudly at load time instead of producing
// silently wrong state.
func ParseScenarioYAML(data []byte) (*ScenarioDocument, error) {
	var doc ScenarioDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parsing scenario yaml: %w", err)
	}

	if doc.EngineVersionConstraint != "" {
		constraint, err := semver.NewConstraint(doc.EngineVersionConstraint)
		if err != nil {
			return nil, fmt.Errorf("store: invalid engine_version_constraint %q: %w", doc.EngineVersionConstraint, err)
		}
		running, err := semver.NewVersion(EngineVersion)
		if err != nil {
			return nil, fmt.Errorf("store: invalid running EngineVersion %q: %w", EngineVersion, err)
		}
		if !constraint.Check(running) {
			return nil, fmt.Errorf("store: scenario requires engine %s, running %s", doc.EngineVersionConstraint, EngineVersion)
		}
	}

	return &doc, nil
}

// DifficultyFromMetadata reads the "difficulty" key out of a loosely
// typed metadata map, accepting the exact strings "easy", "hard" or
// "deadly", or a numeric tier (1 easy, 2 normal, 3 hard, 4 and above
// deadly); anything else is normal. Hand-authored YAML scenarios are
// not guaranteed
// to use the engine's exact Difficulty string values.
func DifficultyFromMetadata(metadata map[string]interface{}) engine.Difficulty {
	raw, ok := metadata["difficulty"]
	if !ok {
		return engine.DifficultyNormal
	}
	switch v := cast.ToString(raw); v {
	case "easy":
		return engine.DifficultyEasy
	case "hard":
		return engine.DifficultyHard
	case "deadly":
		return engine.DifficultyDeadly
	default:
		if n := cast.ToInt(raw); n > 0 {
			switch {
			case n <= 1:
				return engine.DifficultyEasy
			case n == 2:
				return engine.DifficultyNormal
			case n == 3:
				return engine.DifficultyHard
			default:
				return engine.DifficultyDeadly
			}
		}
		return engine.DifficultyNormal
	}
}
