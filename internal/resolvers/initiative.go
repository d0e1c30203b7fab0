package resolvers

import (
	"sort"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

type rollInitiativeResolver struct{}

// Resolve implements ROLL_INITIATIVE: rolls initiative for every living
// entity, orders them highest-first (ties broken by entity ID for
// determinism), and transitions the state into combat mode at round 1
// with the top of the order active.
func (rollInitiativeResolver) Resolve(state *engine.GameState, action engine.Action, deps engine.Deps) ([]engine.Event, []string) {
	if state.Combat.Mode == engine.ModeCombat {
		return nil, []string{"COMBAT_ALREADY"}
	}

	combatRules := deps.Rules.Combat()
	var entries []engine.InitiativeEntry
	for _, e := range state.Entities.All() {
		if e.Kind == engine.EntityObject || e.IsDead() {
			continue
		}
		roll := combatRules.Initiative(state, e)
		entries = append(entries, engine.InitiativeEntry{EntityID: e.ID, Roll: roll})
	}
	if len(entries) == 0 {
		return nil, []string{"INVALID_ACTION"}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Roll != entries[j].Roll {
			return entries[i].Roll > entries[j].Roll
		}
		return entries[i].EntityID < entries[j].EntityID
	})

	order := make([]string, len(entries))
	for i, entry := range entries {
		order[i] = entry.EntityID
	}

	state.Combat.Mode = engine.ModeCombat
	state.Combat.Round = 1
	state.Combat.InitiativeOrder = order
	state.Combat.ActiveEntityID = &order[0]

	ev := engine.NewEvent(state, engine.EventInitiativeRolled, engine.InitiativeRolledPayload{Order: entries})
	return []engine.Event{ev}, nil
}
