// Package resolvers implements apply_action: the single entry point
// that clones a GameState, dispatches to the resolver selected by the
// action's type, and returns the mutated clone plus the events that
// call produced.
package resolvers

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
	apperr "github.com/ctclostio/tabletop-engine/pkg/errors"
	"github.com/ctclostio/tabletop-engine/pkg/logger"
)

// ApplyResult is apply_action's return value.
type ApplyResult struct {
	OK        bool
	NextState *engine.GameState
	Events    []engine.Event
	Errors    []string
}

// registry maps an ActionType to the resolver that handles it. Unlike
// the rule module registry it carries no pluggability surface — the
// Action type union is closed.
var registry = map[engine.ActionType]engine.Resolver{
	engine.ActionMove:           moveResolver{},
	engine.ActionAttack:         attackResolver{},
	engine.ActionEndTurn:        endTurnResolver{},
	engine.ActionRollInitiative: rollInitiativeResolver{},
	engine.ActionSetSeed:        setSeedResolver{},
}

// Apply is apply_action: clone, dispatch, emit. The input state is
// never observably mutated — every resolver receives and mutates only
// the fresh clone.
func Apply(state *engine.GameState, action engine.Action, deps engine.Deps) ApplyResult {
	next := state.Clone()

	resolver, known := registry[action.Type]
	if !known {
		rejectCode := "INVALID_ACTION"
		appendRejection(next, action, []string{rejectCode})
		logger.Debug().Str("action_type", string(action.Type)).
			Str("detail", apperr.Message(apperr.Code(rejectCode))).
			Msg("apply_action: unknown action type")
		return ApplyResult{
			OK:        false,
			NextState: next,
			Events:    tailEvents(next, 1),
			Errors:    []string{rejectCode},
		}
	}

	before := len(next.Log.Events)
	events, rejectCodes := resolver.Resolve(next, action, deps)

	if len(rejectCodes) > 0 {
		// Discard any partial mutation the resolver made: resolvers
		// are written to check all preconditions before mutating, but
		// as a structural guarantee the rejection event is appended to
		// a fresh clone of the input, never to whatever mutation a
		// buggy resolver might have left behind.
		next = state.Clone()
		appendRejection(next, action, rejectCodes)
		logger.Debug().Str("action_type", string(action.Type)).Strs("reasons", rejectCodes).
			Str("detail", apperr.Message(apperr.Code(rejectCodes[0]))).
			Msg("apply_action: rejected")
		return ApplyResult{
			OK:        false,
			NextState: next,
			Events:    tailEvents(next, 1),
			Errors:    rejectCodes,
		}
	}

	next.Log.Events = append(next.Log.Events, events...)
	return ApplyResult{
		OK:        true,
		NextState: next,
		Events:    tailEvents(next, len(next.Log.Events)-before),
	}
}

// tailEvents returns the last n events appended to state's log — the
// events produced by this call, not the full log.
func tailEvents(state *engine.GameState, n int) []engine.Event {
	total := len(state.Log.Events)
	if n > total {
		n = total
	}
	return append([]engine.Event(nil), state.Log.Events[total-n:]...)
}

func appendRejection(state *engine.GameState, action engine.Action, reasons []string) {
	state.Log.Events = append(state.Log.Events, engine.NewEvent(state, engine.EventActionRejected, engine.ActionRejectedPayload{
		Action:  action,
		Reasons: reasons,
	}))
}
