package resolvers

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
)

type endTurnResolver struct{}

// Resolve implements END_TURN: advances the active entity to the next
// living member of the initiative order, wrapping to a new round when
// it cycles back to the front. If that leaves one faction with no
// living members, combat ends instead of handing off the turn.
func (endTurnResolver) Resolve(state *engine.GameState, action engine.Action, deps engine.Deps) ([]engine.Event, []string) {
	if state.Combat.Mode != engine.ModeCombat {
		return nil, []string{"COMBAT_ALREADY"}
	}
	if state.Combat.ActiveEntityID == nil || *state.Combat.ActiveEntityID != action.EntityID {
		return nil, []string{"NOT_YOUR_TURN"}
	}
	order := state.Combat.InitiativeOrder
	if len(order) == 0 {
		return nil, []string{"INVALID_ACTION"}
	}

	if winner, ended := combatWinner(state); ended {
		ev := engine.NewEvent(state, engine.EventCombatEnded, engine.CombatEndedPayload{Winner: winner})
		state.Combat.Mode = engine.ModeExploration
		state.Combat.ActiveEntityID = nil
		state.Combat.InitiativeOrder = nil
		state.Combat.Round = 0
		return []engine.Event{ev}, nil
	}

	curIdx := -1
	for i, id := range order {
		if id == action.EntityID {
			curIdx = i
			break
		}
	}
	if curIdx == -1 {
		return nil, []string{"ENTITY_NOT_FOUND"}
	}

	nextIdx := curIdx
	wrapped := false
	for step := 0; step < len(order); step++ {
		nextIdx = (nextIdx + 1) % len(order)
		if nextIdx == 0 {
			wrapped = true
		}
		next := state.Entities.ByID(order[nextIdx])
		if next != nil && !next.IsDead() {
			break
		}
	}

	round := state.Combat.Round
	if wrapped {
		round++
	}
	state.Combat.Round = round
	state.Combat.ActiveEntityID = &order[nextIdx]

	ev := engine.NewEvent(state, engine.EventTurnEnded, engine.TurnEndedPayload{
		EntityID:     action.EntityID,
		NextEntityID: order[nextIdx],
		Round:        round,
	})
	return []engine.Event{ev}, nil
}

// combatWinner reports whether one side has no living members left and,
// if so, which faction won.
func combatWinner(state *engine.GameState) (winner string, ended bool) {
	playersAlive, npcsAlive := false, false
	for _, e := range state.Entities.Players {
		if !e.IsDead() {
			playersAlive = true
		}
	}
	for _, e := range state.Entities.NPCs {
		if !e.IsDead() {
			npcsAlive = true
		}
	}
	switch {
	case !playersAlive && !npcsAlive:
		return "", false
	case !npcsAlive:
		return "players", true
	case !playersAlive:
		return "npcs", true
	default:
		return "", false
	}
}
