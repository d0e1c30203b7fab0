package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

// ValidationResult is Validate's return value: a pass/fail flag plus
// every violated invariant found, unranked.
type ValidationResult struct {
	OK     bool
	Errors []ValidationError
}

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var structuralValidator = validator.New()

// Validate runs a two-pass check: (a) structural shape via tagged
// struct validation, (b) the full set of semantic invariants below.
// It is pure — it never mutates state and is never called from inside
// apply_action's hot path.
func Validate(state *GameState) ValidationResult {
	var merr *multierror.Error

	if err := structuralValidator.Struct(&state.Map.Grid); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("structural: %w", err))
	}
	for i := range state.Entities.All() {
		e := state.Entities.All()[i]
		if err := structuralValidator.Var(e.ID, "required"); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("structural: entity missing id: %w", err))
		}
	}

	errs := checkInvariants(state)
	for _, e := range errs {
		merr = multierror.Append(merr, fmt.Errorf("%s: %s", e.Code, e.Message))
	}

	if merr == nil || len(merr.Errors) == 0 {
		return ValidationResult{OK: true}
	}
	return ValidationResult{OK: false, Errors: errs}
}

func verr(code, message string) ValidationError {
	return ValidationError{Code: code, Message: message}
}

// checkInvariants enforces every structural and semantic invariant a
// well-formed GameState must satisfy.
func checkInvariants(g *GameState) []ValidationError {
	var errs []ValidationError
	add := func(code, msg string) { errs = append(errs, verr(code, msg)) }

	seenIDs := make(map[string]int)
	all := g.Entities.All()

	// 1. Unique entity IDs across players/npcs/objects.
	for _, e := range all {
		seenIDs[e.ID]++
	}
	for id, n := range seenIDs {
		if n > 1 {
			add("DUPLICATE_ENTITY_ID", fmt.Sprintf("entity id %q appears %d times", id, n))
		}
	}

	// 2. kind matches containing bucket.
	checkKind := func(bucket []Entity, want EntityKind, label string) {
		for _, e := range bucket {
			if e.Kind != want {
				add("ENTITY_KIND_MISMATCH", fmt.Sprintf("entity %q in %s bucket has kind %q", e.ID, label, e.Kind))
			}
		}
	}
	checkKind(g.Entities.Players, EntityPlayer, "players")
	checkKind(g.Entities.NPCs, EntityNPC, "npcs")
	checkKind(g.Entities.Objects, EntityObject, "objects")

	occupied := make(map[Position][]string)
	for _, e := range all {
		// 3. 0 <= hp_current <= hp_max.
		if e.Stats.HPCurrent < 0 || e.Stats.HPCurrent > e.Stats.HPMax {
			add("HP_OUT_OF_RANGE", fmt.Sprintf("entity %q hp_current=%d out of [0,%d]", e.ID, e.Stats.HPCurrent, e.Stats.HPMax))
		}
		// 4. hp_max >= 1.
		if e.Stats.HPMax < 1 {
			add("HP_MAX_INVALID", fmt.Sprintf("entity %q hp_max=%d must be >= 1", e.ID, e.Stats.HPMax))
		}
		// 5. Position in map bounds.
		if !g.Map.InBounds(e.Position) {
			add("POSITION_OUT_OF_BOUNDS", fmt.Sprintf("entity %q position %+v out of bounds", e.ID, e.Position))
		}
		occupied[e.Position] = append(occupied[e.Position], e.ID)
		// 7. No entity on a blocks_movement tile.
		if g.Map.TileAt(e.Position).BlocksMovement {
			add("ENTITY_ON_BLOCKED_TILE", fmt.Sprintf("entity %q stands on a blocked tile", e.ID))
		}
		// 8. Condition strings non-empty.
		for _, c := range e.Conditions {
			if c == "" {
				add("EMPTY_CONDITION", fmt.Sprintf("entity %q has an empty condition string", e.ID))
			}
		}
		// 9/10. Inventory IDs unique per entity, qty >= 0.
		invSeen := make(map[string]int)
		for _, item := range e.Inventory {
			invSeen[item.ID]++
			if item.Qty < 0 {
				add("INVENTORY_QTY_NEGATIVE", fmt.Sprintf("entity %q item %q qty=%d", e.ID, item.ID, item.Qty))
			}
		}
		for id, n := range invSeen {
			if n > 1 {
				add("DUPLICATE_INVENTORY_ID", fmt.Sprintf("entity %q has %d items with id %q", e.ID, n, id))
			}
		}
	}
	// 6. No two entities share a cell.
	for pos, ids := range occupied {
		if len(ids) > 1 {
			add("CELL_OVERLAP", fmt.Sprintf("cell %+v occupied by %v", pos, ids))
		}
	}

	// 11/12/13/14/15/16. Combat-mode invariants.
	if g.Combat.Mode == ModeExploration {
		if g.Combat.Round != 0 || g.Combat.ActiveEntityID != nil || len(g.Combat.InitiativeOrder) != 0 {
			add("EXPLORATION_STATE_INVALID", "exploration mode requires round=0, no active entity, empty initiative order")
		}
	} else {
		if g.Combat.ActiveEntityID == nil || g.Entities.ByID(*g.Combat.ActiveEntityID) == nil {
			add("ACTIVE_ENTITY_MISSING", "active_entity_id must reference an existing entity in combat")
		}
		seenInit := make(map[string]int)
		for _, id := range g.Combat.InitiativeOrder {
			seenInit[id]++
			if g.Entities.ByID(id) == nil {
				add("INITIATIVE_ENTITY_MISSING", fmt.Sprintf("initiative_order references missing entity %q", id))
			}
		}
		for id, n := range seenInit {
			if n > 1 {
				add("INITIATIVE_DUPLICATE", fmt.Sprintf("entity %q appears %d times in initiative_order", id, n))
			}
		}
		if g.Combat.ActiveEntityID != nil {
			found := false
			for _, id := range g.Combat.InitiativeOrder {
				if id == *g.Combat.ActiveEntityID {
					found = true
					break
				}
			}
			if !found {
				add("ACTIVE_ENTITY_NOT_IN_ORDER", "active_entity_id must be present in initiative_order")
			}
		}
		if g.Combat.Round < 1 {
			add("COMBAT_ROUND_INVALID", "combat mode requires round >= 1")
		}
	}

	// 17/18/19. Terrain tiles in bounds, no duplicate coords, map size >= (1,1).
	if g.Map.Grid.Size.W < 1 || g.Map.Grid.Size.H < 1 {
		add("MAP_SIZE_INVALID", "map size must be at least (1,1)")
	}
	terrainSeen := make(map[Position]int)
	for _, t := range g.Map.Terrain {
		p := Position{X: t.X, Y: t.Y}
		terrainSeen[p]++
		if !g.Map.InBounds(p) {
			add("TERRAIN_OUT_OF_BOUNDS", fmt.Sprintf("terrain tile %+v out of bounds", p))
		}
	}
	for p, n := range terrainSeen {
		if n > 1 {
			add("DUPLICATE_TERRAIN", fmt.Sprintf("terrain coordinate %+v listed %d times", p, n))
		}
	}

	// 20/21. Log event IDs unique, timestamps non-decreasing.
	evSeen := make(map[string]int)
	lastTS := int64(-1 << 62)
	for _, ev := range g.Log.Events {
		evSeen[ev.ID]++
		if ev.Timestamp < lastTS {
			add("LOG_TIMESTAMP_DECREASING", fmt.Sprintf("event %q timestamp %d precedes prior event", ev.ID, ev.Timestamp))
		}
		lastTS = ev.Timestamp
	}
	for id, n := range evSeen {
		if n > 1 {
			add("DUPLICATE_EVENT_ID", fmt.Sprintf("event id %q appears %d times", id, n))
		}
	}

	// 22. rng.mode=seeded => non-empty seed.
	if g.RNG.Mode == RNGSeeded && (g.RNG.Seed == nil || *g.RNG.Seed == "") {
		add("SEED_REQUIRED", "seeded rng mode requires a non-empty seed")
	}
	// 23. every last_rolls result_total is present (non-nil field is implicit in Go; check sane bound for d20-style rolls is source-dependent, so only check non-negative).
	for _, rr := range g.RNG.LastRolls {
		if rr.ResultTotal < 0 {
			add("ROLL_RESULT_INVALID", fmt.Sprintf("roll %q result_total=%d is negative", rr.ID, rr.ResultTotal))
		}
	}

	// 24. ui.selected_entity_id references an existing entity, or is None.
	if g.UI.SelectedEntityID != nil && g.Entities.ByID(*g.UI.SelectedEntityID) == nil {
		add("UI_SELECTED_ENTITY_MISSING", "ui.selected_entity_id references a non-existent entity")
	}
	// 25. ui.hovered_cell in bounds, or is None.
	if g.UI.HoveredCell != nil && !g.Map.InBounds(Position{X: g.UI.HoveredCell.X, Y: g.UI.HoveredCell.Y}) {
		add("UI_HOVERED_CELL_OUT_OF_BOUNDS", "ui.hovered_cell is outside map bounds")
	}

	return errs
}
