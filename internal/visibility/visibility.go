// Package visibility computes fog-of-war visible-cell sets: a cell is
// visible from an origin if it falls within vision range (Chebyshev
// distance) and no vision-blocking tile interrupts the Bresenham line
// between origin and cell.
package visibility

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
)

// Faction selects which entities' vision to union together.
type Faction string

const (
	FactionPlayers Faction = "players"
	FactionNPCs    Faction = "npcs"
	FactionAll     Faction = "all"
)

// ComputeVisibleCells is compute_visible_cells(state, faction): the set
// of cells the selected faction can currently see. When the map has fog
// of war disabled, every in-bounds cell is visible regardless of
// faction. Otherwise it is the union, over every non-dead entity of the
// selected faction, of that entity's own vision (Chebyshev range up to
// its vision_range, default 8, over in-bounds cells; Bresenham line of
// sight). A
// faction with no living entities yields an empty, but valid, set.
func ComputeVisibleCells(state *engine.GameState, faction Faction) map[engine.Position]bool {
	m := &state.Map
	if !m.FogOfWarEnabled {
		return allCells(m)
	}

	visible := map[engine.Position]bool{}
	for _, e := range entitiesFor(state, faction) {
		if e.IsDead() {
			continue
		}
		for cell := range visibleCellsFromOrigin(m, e.Position, e.Stats.GetVisionRange()) {
			visible[cell] = true
		}
	}
	return visible
}

// entitiesFor returns the entities belonging to faction, never
// including the object bucket — objects have no vision of their own.
func entitiesFor(state *engine.GameState, faction Faction) []engine.Entity {
	switch faction {
	case FactionPlayers:
		return state.Entities.Players
	case FactionNPCs:
		return state.Entities.NPCs
	default:
		all := make([]engine.Entity, 0, len(state.Entities.Players)+len(state.Entities.NPCs))
		all = append(all, state.Entities.Players...)
		all = append(all, state.Entities.NPCs...)
		return all
	}
}

// allCells enumerates every in-bounds cell of m, for the
// fog-of-war-disabled case.
func allCells(m *engine.GameMap) map[engine.Position]bool {
	cells := make(map[engine.Position]bool, m.Grid.Size.W*m.Grid.Size.H)
	for x := 0; x < m.Grid.Size.W; x++ {
		for y := 0; y < m.Grid.Size.H; y++ {
			cells[engine.Position{X: x, Y: y}] = true
		}
	}
	return cells
}

// visibleCellsFromOrigin returns every cell within rangeLimit of origin
// that has an unbroken line of sight to it, origin itself always
// included.
func visibleCellsFromOrigin(m *engine.GameMap, origin engine.Position, rangeLimit int) map[engine.Position]bool {
	visible := map[engine.Position]bool{origin: true}

	for dx := -rangeLimit; dx <= rangeLimit; dx++ {
		for dy := -rangeLimit; dy <= rangeLimit; dy++ {
			cell := engine.Position{X: origin.X + dx, Y: origin.Y + dy}
			if cell.Equal(origin) || !m.InBounds(cell) {
				continue
			}
			if cell.Chebyshev(origin) > rangeLimit {
				continue
			}
			if hasLineOfSight(m, origin, cell) {
				visible[cell] = true
			}
		}
	}
	return visible
}

// hasLineOfSight walks a Bresenham line from from to to and reports
// whether any intermediate tile blocks vision. The destination tile
// itself is never treated as blocking its own visibility.
func hasLineOfSight(m *engine.GameMap, from, to engine.Position) bool {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		if x == x1 && y == y1 {
			return true
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		if x == x1 && y == y1 {
			return true
		}
		if m.TileAt(engine.Position{X: x, Y: y}).BlocksVision {
			return false
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
