package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

func TestVisibleCellsFromOriginIncludesOrigin(t *testing.T) {
	m := &engine.GameMap{Grid: engine.Grid{Size: engine.GridSize{W: 10, H: 10}}}
	origin := engine.Position{X: 5, Y: 5}
	visible := visibleCellsFromOrigin(m, origin, 3)
	assert.True(t, visible[origin])
}

func TestVisibleCellsFromOriginRespectsRangeLimit(t *testing.T) {
	m := &engine.GameMap{Grid: engine.Grid{Size: engine.GridSize{W: 20, H: 20}}}
	origin := engine.Position{X: 10, Y: 10}
	visible := visibleCellsFromOrigin(m, origin, 2)
	assert.False(t, visible[engine.Position{X: 13, Y: 10}], "a cell 3 away must be excluded from a range-2 vision set")
	assert.True(t, visible[engine.Position{X: 12, Y: 10}])
}

func TestVisibleCellsFromOriginBlockedByWall(t *testing.T) {
	m := &engine.GameMap{Grid: engine.Grid{Size: engine.GridSize{W: 10, H: 10}}}
	m.Terrain = []engine.Tile{{X: 5, Y: 0, Kind: engine.TileBlocked, BlocksVision: true}}
	origin := engine.Position{X: 5, Y: -2}
	visible := visibleCellsFromOrigin(m, origin, 5)
	assert.False(t, visible[engine.Position{X: 5, Y: 2}], "a cell directly behind a vision-blocking wall must not be visible")
}

func TestHasLineOfSightDestinationNeverBlocksItself(t *testing.T) {
	m := &engine.GameMap{Grid: engine.Grid{Size: engine.GridSize{W: 10, H: 10}}}
	m.Terrain = []engine.Tile{{X: 5, Y: 5, Kind: engine.TileBlocked, BlocksVision: true}}
	assert.True(t, hasLineOfSight(m, engine.Position{X: 4, Y: 5}, engine.Position{X: 5, Y: 5}), "the destination tile's own blocking must not hide itself")
}

func TestHasLineOfSightClearPath(t *testing.T) {
	m := &engine.GameMap{Grid: engine.Grid{Size: engine.GridSize{W: 10, H: 10}}}
	assert.True(t, hasLineOfSight(m, engine.Position{X: 0, Y: 0}, engine.Position{X: 5, Y: 5}))
}

func TestHasLineOfSightDiagonalBlockedByIntermediateWall(t *testing.T) {
	m := &engine.GameMap{Grid: engine.Grid{Size: engine.GridSize{W: 10, H: 10}}}
	m.Terrain = []engine.Tile{{X: 2, Y: 2, Kind: engine.TileBlocked, BlocksVision: true}}
	assert.False(t, hasLineOfSight(m, engine.Position{X: 0, Y: 0}, engine.Position{X: 4, Y: 4}))
}

func visFixtureState(fogEnabled bool) *engine.GameState {
	return &engine.GameState{
		Map: engine.GameMap{Grid: engine.Grid{Size: engine.GridSize{W: 20, H: 20}}, FogOfWarEnabled: fogEnabled},
		Entities: engine.EntityBuckets{
			Players: []engine.Entity{
				{ID: "p1", Kind: engine.EntityPlayer, Position: engine.Position{X: 2, Y: 2}},
			},
			NPCs: []engine.Entity{
				{ID: "n1", Kind: engine.EntityNPC, Position: engine.Position{X: 15, Y: 15}},
			},
		},
	}
}

func TestComputeVisibleCellsReturnsEveryCellWhenFogDisabled(t *testing.T) {
	state := visFixtureState(false)
	visible := ComputeVisibleCells(state, FactionAll)
	assert.Len(t, visible, 20*20)
	assert.True(t, visible[engine.Position{X: 19, Y: 19}], "fog disabled must make every in-bounds cell visible regardless of vision range")
}

func TestComputeVisibleCellsSelectsOnlyTheRequestedFaction(t *testing.T) {
	state := visFixtureState(true)
	playersOnly := ComputeVisibleCells(state, FactionPlayers)
	assert.True(t, playersOnly[engine.Position{X: 2, Y: 2}])
	assert.False(t, playersOnly[engine.Position{X: 15, Y: 15}], "npc position must not be visible to the players-only faction query")

	npcsOnly := ComputeVisibleCells(state, FactionNPCs)
	assert.True(t, npcsOnly[engine.Position{X: 15, Y: 15}])
	assert.False(t, npcsOnly[engine.Position{X: 2, Y: 2}])
}

func TestComputeVisibleCellsAllUnionsBothFactions(t *testing.T) {
	state := visFixtureState(true)
	visible := ComputeVisibleCells(state, FactionAll)
	assert.True(t, visible[engine.Position{X: 2, Y: 2}])
	assert.True(t, visible[engine.Position{X: 15, Y: 15}])
}

func TestComputeVisibleCellsExcludesDeadEntities(t *testing.T) {
	state := visFixtureState(true)
	state.Entities.Players[0].AddCondition(engine.CondDead)
	visible := ComputeVisibleCells(state, FactionPlayers)
	assert.Empty(t, visible, "a faction with no living entities must yield an empty, but valid, set")
}

func TestComputeVisibleCellsUsesDefaultVisionRangeWhenUnset(t *testing.T) {
	state := visFixtureState(true)
	visible := ComputeVisibleCells(state, FactionPlayers)
	assert.True(t, visible[engine.Position{X: 2 + engine.DefaultVisionRange, Y: 2}])
	assert.False(t, visible[engine.Position{X: 2 + engine.DefaultVisionRange + 1, Y: 2}])
}

func TestComputeVisibleCellsRespectsCustomVisionRange(t *testing.T) {
	state := visFixtureState(true)
	customRange := 2
	state.Entities.Players[0].Stats.VisionRange = &customRange
	visible := ComputeVisibleCells(state, FactionPlayers)
	assert.True(t, visible[engine.Position{X: 4, Y: 2}])
	assert.False(t, visible[engine.Position{X: 5, Y: 2}])
}
