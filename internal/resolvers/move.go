package resolvers

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
)

type moveResolver struct{}

// Resolve validates every precondition before touching state, so a
// rejection never leaves a partial mutation behind for apply_action
// to discard.
func (moveResolver) Resolve(state *engine.GameState, action engine.Action, deps engine.Deps) ([]engine.Event, []string) {
	entity := state.Entities.ByID(action.EntityID)
	if entity == nil {
		return nil, []string{"ENTITY_NOT_FOUND"}
	}
	if entity.IsDead() {
		return nil, []string{"DEAD_ENTITY"}
	}
	if state.Combat.Mode == engine.ModeCombat {
		if state.Combat.ActiveEntityID == nil || *state.Combat.ActiveEntityID != action.EntityID {
			return nil, []string{"NOT_YOUR_TURN"}
		}
	}
	if len(action.Path) == 0 {
		return nil, []string{"INVALID_ACTION"}
	}

	cur := entity.Position
	for _, step := range action.Path {
		dx := abs(step.X - cur.X)
		dy := abs(step.Y - cur.Y)
		if !((dx == 1 && dy == 0) || (dx == 0 && dy == 1)) {
			return nil, []string{"DIAGONAL_STEP"}
		}
		cur = step
	}

	// Legality is a raw step count against effective movement speed.
	// Terrain cost only governs path optimality for the pathfinder, not
	// whether a requested MOVE is legal.
	speed := deps.Rules.Movement().Speed(entity, entity.Conditions, state.Map.TileAt(entity.Position).Kind)
	if len(action.Path) > speed {
		return nil, []string{"OUT_OF_RANGE"}
	}

	for _, step := range action.Path {
		if !state.Map.InBounds(step) {
			return nil, []string{"OUT_OF_BOUNDS"}
		}
	}
	for _, step := range action.Path {
		if state.Map.TileAt(step).BlocksMovement {
			return nil, []string{"BLOCKED_CELL"}
		}
	}
	for _, step := range action.Path {
		for _, other := range state.Entities.All() {
			if other.ID == entity.ID {
				continue
			}
			if other.Position.Equal(step) {
				return nil, []string{"OVERLAP"}
			}
		}
	}

	from := entity.Position
	final := action.Path[len(action.Path)-1]
	entity.Position = final

	ev := engine.NewEvent(state, engine.EventMoveApplied, engine.MoveAppliedPayload{
		EntityID:      entity.ID,
		From:          from,
		FinalPosition: final,
		Steps:         len(action.Path),
	})
	return []engine.Event{ev}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
