package resolvers

import (
	"testing"

	"github.com/ctclostio/tabletop-engine/internal/engine"
	"github.com/ctclostio/tabletop-engine/internal/rules"
)

func testDeps() engine.Deps {
	return engine.Deps{Rules: rules.NewBaseline()}
}

func freshState() *engine.GameState {
	return &engine.GameState{
		SchemaVersion: "1.0",
		Map: engine.GameMap{
			ID:   "map-1",
			Grid: engine.Grid{Kind: "square", Size: engine.GridSize{W: 10, H: 10}, CellSize: 5},
		},
		Entities: engine.EntityBuckets{
			Players: []engine.Entity{
				{ID: "p1", Kind: engine.EntityPlayer, Position: engine.Position{X: 0, Y: 0},
					Stats: engine.Stats{HPCurrent: 10, HPMax: 10, AC: 12, MovementSpeed: 4}},
			},
			NPCs: []engine.Entity{
				{ID: "n1", Kind: engine.EntityNPC, Position: engine.Position{X: 1, Y: 0},
					Stats: engine.Stats{HPCurrent: 7, HPMax: 7, AC: 13, MovementSpeed: 4}},
			},
		},
		Combat: engine.CombatState{Mode: engine.ModeExploration},
		RNG:    engine.RNGState{Mode: engine.RNGManual},
	}
}

func seedRNG(state *engine.GameState, seed string) {
	state.RNG.SetSeed(seed)
}
