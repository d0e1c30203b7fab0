package resolvers

import (
	"github.com/ctclostio/tabletop-engine/internal/engine"
)

type setSeedResolver struct{}

// Resolve implements SET_SEED: switches the RNG into seeded mode and
// resets its roll counter so the stream starts fresh from draw zero.
// Past rolls already recorded in rng.last_rolls are left untouched —
// this only changes what future draws will produce.
func (setSeedResolver) Resolve(state *engine.GameState, action engine.Action, deps engine.Deps) ([]engine.Event, []string) {
	if action.Seed == "" {
		return nil, []string{"INVALID_ACTION"}
	}

	seed := action.Seed
	state.RNG.SetSeed(seed)

	ev := engine.NewEvent(state, engine.EventRNGSeedSet, engine.RNGSeedSetPayload{Seed: seed})
	return []engine.Event{ev}, nil
}
