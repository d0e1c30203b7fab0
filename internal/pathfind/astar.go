// Package pathfind implements A* search over the 4-connected map grid:
// Manhattan-heuristic shortest path under terrain cost, respecting
// occupancy (an entity may not path through another entity's cell,
// excluding itself) and an optional cost budget.
package pathfind

import (
	"container/heap"

	"github.com/cespare/xxhash/v2"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

// TerrainCoster reports the movement cost of entering a tile of the
// given kind. A cost of engine.ImpassableCost (or higher) marks the
// tile as never enterable.
type TerrainCoster interface {
	TerrainCost(kind engine.TileKind) int
}

// Options configures a single FindPath call.
type Options struct {
	// MaxCost bounds the total terrain cost of the returned path. Zero
	// means unbounded.
	MaxCost int
	// Occupied lists cells no path may enter, typically every living
	// entity's position except the one being routed.
	Occupied map[engine.Position]bool
}

func cellKey(p engine.Position) uint64 {
	var buf [16]byte
	putInt64(buf[0:8], int64(p.X))
	putInt64(buf[8:16], int64(p.Y))
	return xxhash.Sum64(buf[:])
}

func putInt64(b []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
}

type node struct {
	pos      engine.Position
	priority int // g + h
	index    int
}

type openHeap []*node

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *openHeap) Push(x interface{}) { n := x.(*node); n.index = len(*h); *h = append(*h, n) }
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// FindPath returns the sequence of cells from (but excluding) start to
// goal, inclusive of goal, or nil if no path exists within the
// supplied budget. mover computes terrain cost for candidate cells.
func FindPath(m *engine.GameMap, start, goal engine.Position, mover TerrainCoster, opts Options) []engine.Position {
	if start.Equal(goal) {
		return nil
	}
	if !m.InBounds(goal) || opts.Occupied[goal] {
		return nil
	}
	if cost := mover.TerrainCost(m.TileAt(goal).Kind); cost >= engine.ImpassableCost {
		return nil
	}

	gScore := map[uint64]int{cellKey(start): 0}
	cameFrom := map[uint64]engine.Position{}

	open := &openHeap{{pos: start, priority: start.Manhattan(goal)}}
	heap.Init(open)
	inOpen := map[uint64]bool{cellKey(start): true}
	closed := map[uint64]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		curKey := cellKey(current.pos)
		inOpen[curKey] = false
		if closed[curKey] {
			continue
		}
		closed[curKey] = true

		if current.pos.Equal(goal) {
			return reconstruct(cameFrom, current.pos, start)
		}

		for _, next := range neighbors(current.pos) {
			if !m.InBounds(next) {
				continue
			}
			nextKey := cellKey(next)
			if closed[nextKey] {
				continue
			}
			if !next.Equal(goal) && opts.Occupied[next] {
				continue
			}
			tile := m.TileAt(next)
			if tile.BlocksMovement {
				continue
			}
			stepCost := mover.TerrainCost(tile.Kind)
			if stepCost >= engine.ImpassableCost {
				continue
			}

			tentativeG := gScore[curKey] + stepCost
			if opts.MaxCost > 0 && tentativeG > opts.MaxCost {
				continue
			}
			if existing, seen := gScore[nextKey]; seen && tentativeG >= existing {
				continue
			}

			cameFrom[nextKey] = current.pos
			gScore[nextKey] = tentativeG
			priority := tentativeG + next.Manhattan(goal)
			if !inOpen[nextKey] {
				heap.Push(open, &node{pos: next, priority: priority})
				inOpen[nextKey] = true
			}
		}
	}

	return nil
}

// FindPathToAdjacent finds the shortest path to any of the four cells
// orthogonally adjacent to target (Manhattan distance 1), the common
// case of pathing next to an enemy to attack rather than onto its exact
// cell. It returns nil when start is already one of those cells.
func FindPathToAdjacent(m *engine.GameMap, start, target engine.Position, mover TerrainCoster, opts Options) []engine.Position {
	var best []engine.Position
	for _, cand := range neighbors(target) {
		if cand.Equal(start) {
			return nil
		}
		path := FindPath(m, start, cand, mover, opts)
		if path == nil {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}

func neighbors(p engine.Position) [4]engine.Position {
	return [4]engine.Position{
		{X: p.X + 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
	}
}

func reconstruct(cameFrom map[uint64]engine.Position, current, start engine.Position) []engine.Position {
	var reversed []engine.Position
	for !current.Equal(start) {
		reversed = append(reversed, current)
		prev, ok := cameFrom[cellKey(current)]
		if !ok {
			break
		}
		current = prev
	}
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}
