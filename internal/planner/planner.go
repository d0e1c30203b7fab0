// Package planner implements the NPC turn planner: a deterministic,
// pure function from (state, entity, difficulty) to the sequence of
// actions that entity should take this turn. It never mutates state or
// calls apply_action itself — callers fold the returned actions
// through apply_action one at a time, same as a human player's input.
package planner

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
	"github.com/ctclostio/tabletop-engine/internal/pathfind"
)

// Tactic selects which living opposing entity an NPC prioritizes.
type Tactic string

const (
	TacticNearest          Tactic = "nearest"
	TacticFocusFireWeakest Tactic = "focus_fire_weakest"
)

// TacticFor maps a difficulty preset to its NPC tactic: easy and
// normal play pick the nearest target, hard and deadly focus fire the
// lowest-HP living target to end fights faster.
func TacticFor(d engine.Difficulty) Tactic {
	switch d {
	case engine.DifficultyHard, engine.DifficultyDeadly:
		return TacticFocusFireWeakest
	default:
		return TacticNearest
	}
}

// PlanTurn returns the ordered actions entity should submit this turn.
// It never includes more than one ATTACK and always ends with
// END_TURN, mirroring the one-action-plus-movement shape of a player
// turn.
func PlanTurn(state *engine.GameState, entityID string, tactic Tactic, deps engine.Deps) []engine.Action {
	self := state.Entities.ByID(entityID)
	if self == nil || self.IsDead() {
		return []engine.Action{{Type: engine.ActionEndTurn, EntityID: entityID}}
	}
	if deps.Rules.Conditions().ShouldSkipTurn(self) {
		return []engine.Action{{Type: engine.ActionEndTurn, EntityID: entityID}}
	}

	target := selectTarget(state, self, tactic)
	if target == nil {
		return []engine.Action{{Type: engine.ActionEndTurn, EntityID: entityID}}
	}

	attackRange := deps.Rules.Combat().AttackRange(self, "")
	var actions []engine.Action

	if self.Position.Chebyshev(target.Position) > attackRange {
		path := planMove(state, self, target, deps)
		if len(path) > 0 {
			actions = append(actions, engine.Action{
				Type:     engine.ActionMove,
				EntityID: self.ID,
				Path:     path,
			})
		}
	}

	finalPos := self.Position
	if len(actions) > 0 {
		finalPos = actions[0].Path[len(actions[0].Path)-1]
	}
	if finalPos.Chebyshev(target.Position) <= attackRange {
		actions = append(actions, engine.Action{
			Type:       engine.ActionAttack,
			AttackerID: self.ID,
			TargetID:   target.ID,
		})
	}

	actions = append(actions, engine.Action{Type: engine.ActionEndTurn, EntityID: self.ID})
	return actions
}

// selectTarget picks the opposing faction's entity matching tactic,
// with entity ID as the deterministic tiebreaker.
func selectTarget(state *engine.GameState, self *engine.Entity, tactic Tactic) *engine.Entity {
	var candidates []*engine.Entity
	if self.Kind == engine.EntityNPC {
		for i := range state.Entities.Players {
			candidates = append(candidates, &state.Entities.Players[i])
		}
	} else {
		for i := range state.Entities.NPCs {
			candidates = append(candidates, &state.Entities.NPCs[i])
		}
	}

	var best *engine.Entity
	for _, c := range candidates {
		if c.IsDead() {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		if better(self, c, best, tactic) {
			best = c
		}
	}
	return best
}

func better(self, candidate, current *engine.Entity, tactic Tactic) bool {
	switch tactic {
	case TacticFocusFireWeakest:
		if candidate.Stats.HPCurrent != current.Stats.HPCurrent {
			return candidate.Stats.HPCurrent < current.Stats.HPCurrent
		}
	default:
		cd := self.Position.Chebyshev(candidate.Position)
		cur := self.Position.Chebyshev(current.Position)
		if cd != cur {
			return cd < cur
		}
	}
	return candidate.ID < current.ID
}

// planMove finds a path toward a cell adjacent to target and trims it
// to the entity's effective movement speed: NPCs never overspend a
// partial path that the resolver would reject outright.
func planMove(state *engine.GameState, self, target *engine.Entity, deps engine.Deps) []engine.Position {
	occupied := map[engine.Position]bool{}
	for _, e := range state.Entities.All() {
		if e.ID != self.ID {
			occupied[e.Position] = true
		}
	}
	mover := deps.Rules.Movement()
	speed := mover.Speed(self, self.Conditions, state.Map.TileAt(self.Position).Kind)

	path := pathfind.FindPathToAdjacent(&state.Map, self.Position, target.Position, mover, pathfind.Options{
		Occupied: occupied,
	})
	if len(path) > speed {
		path = path[:speed]
	}
	return path
}
