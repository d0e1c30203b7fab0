// Package controller drives a combat encounter end to end: it folds
// planner output through apply_action one action at a time and can run
// an entire encounter to a winner for headless simulation and replay
// verification.
package controller

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
	"github.com/ctclostio/tabletop-engine/internal/planner"
	"github.com/ctclostio/tabletop-engine/internal/resolvers"
)

// TurnResult is what ExecuteNPCTurn returns: the state after every
// planned action has been applied, plus the full event stream those
// actions produced, in order.
type TurnResult struct {
	NextState *engine.GameState
	Events    []engine.Event
	Actions   []engine.Action
}

// ExecuteNPCTurn plans and applies one NPC's full turn: a plan action
// sequence that apply_action rejects partway through still leaves
// state advanced by whatever succeeded before the rejection, same as
// any other caller of apply_action.
func ExecuteNPCTurn(state *engine.GameState, entityID string, difficulty engine.Difficulty, deps engine.Deps) TurnResult {
	actions := planner.PlanTurn(state, entityID, planner.TacticFor(difficulty), deps)

	current := state
	var events []engine.Event
	for _, action := range actions {
		result := resolvers.Apply(current, action, deps)
		current = result.NextState
		events = append(events, result.Events...)
		if !result.OK {
			break
		}
	}
	return TurnResult{NextState: current, Events: events, Actions: actions}
}

// SimulationResult is SimulateCombat's return value.
type SimulationResult struct {
	FinalState *engine.GameState
	Events     []engine.Event
	Rounds     uint32
}

// SimulateCombat drives a combat encounter from its current state
// (which must already be in combat, e.g. after a ROLL_INITIATIVE
// action) until COMBAT_ENDED is observed or maxRounds is exceeded as a
// safety bound against a pathological planner loop.
func SimulateCombat(state *engine.GameState, difficulty engine.Difficulty, deps engine.Deps, maxRounds uint32) SimulationResult {
	current := state
	var events []engine.Event

	for current.Combat.Mode == engine.ModeCombat && current.Combat.Round <= maxRounds {
		active := current.ActiveEntity()
		if active == nil {
			break
		}

		var result TurnResult
		if active.Kind == engine.EntityPlayer && active.Controller.Type == engine.ControllerHuman {
			endTurn := engine.Action{Type: engine.ActionEndTurn, EntityID: active.ID}
			applied := resolvers.Apply(current, endTurn, deps)
			result = TurnResult{NextState: applied.NextState, Events: applied.Events}
		} else {
			result = ExecuteNPCTurn(current, active.ID, difficulty, deps)
		}

		current = result.NextState
		events = append(events, result.Events...)

		if hasCombatEnded(result.Events) {
			break
		}
	}

	return SimulationResult{FinalState: current, Events: events, Rounds: current.Combat.Round}
}

func hasCombatEnded(events []engine.Event) bool {
	for _, ev := range events {
		if ev.Type == engine.EventCombatEnded {
			return true
		}
	}
	return false
}
