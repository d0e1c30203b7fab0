package engine

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// StateHash returns a canonical, stable hash of the game-meaningful
// projection of state: entities sorted by ID, events by sequence,
// deterministic field order, UI and wall-clock-derived fields
// excluded. Two states produced by identical action sequences from
// identical seeds must hash equal.
func StateHash(state *GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema=%s;rngalgo=%s;\n", state.SchemaVersion, engineRNGVersion)

	fmt.Fprintf(&b, "map=%s;w=%d;h=%d;cell=%d;fog=%t;\n",
		state.Map.ID, state.Map.Grid.Size.W, state.Map.Grid.Size.H, state.Map.Grid.CellSize, state.Map.FogOfWarEnabled)

	terrain := append([]Tile(nil), state.Map.Terrain...)
	sort.Slice(terrain, func(i, j int) bool {
		if terrain[i].Y != terrain[j].Y {
			return terrain[i].Y < terrain[j].Y
		}
		return terrain[i].X < terrain[j].X
	})
	for _, t := range terrain {
		fmt.Fprintf(&b, "tile(%d,%d)=%s,%t,%t;", t.X, t.Y, t.Kind, t.BlocksMovement, t.BlocksVision)
	}
	b.WriteString("\n")

	entities := state.Entities.All()
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	for _, e := range entities {
		fmt.Fprintf(&b, "entity(%s)=kind:%s,pos:(%d,%d),hp:%d/%d,ac:%d,speed:%d,conds:%s,abilities:%s;\n",
			e.ID, e.Kind, e.Position.X, e.Position.Y, e.Stats.HPCurrent, e.Stats.HPMax, e.Stats.AC, e.Stats.MovementSpeed,
			strings.Join(sortedCopy(e.Conditions), ","), abilityCooldownsKey(e.AbilityCooldowns))
		inv := append([]InventoryItem(nil), e.Inventory...)
		sort.Slice(inv, func(i, j int) bool { return inv[i].ID < inv[j].ID })
		for _, it := range inv {
			fmt.Fprintf(&b, "  item(%s)=%s,qty:%d;", it.ID, it.Name, it.Qty)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "combat=mode:%s,round:%d,active:%s,order:%s;\n",
		state.Combat.Mode, state.Combat.Round, derefStr(state.Combat.ActiveEntityID), strings.Join(state.Combat.InitiativeOrder, ","))

	seed := ""
	if state.RNG.Seed != nil {
		seed = *state.RNG.Seed
	}
	fmt.Fprintf(&b, "rng=mode:%s,seed:%s,consumed:%d,rolls:%d;\n", state.RNG.Mode, seed, state.RNG.RollsConsumed, len(state.RNG.LastRolls))
	for _, r := range state.RNG.LastRolls {
		fmt.Fprintf(&b, "  roll(%s)=%s=%d,src:%s;", r.ID, r.Formula, r.ResultTotal, r.Source)
	}
	b.WriteString("\n")

	for _, ev := range state.Log.Events {
		fmt.Fprintf(&b, "event(%s)=%s,payload:%+v;\n", ev.ID, ev.Type, ev.Payload)
	}

	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func abilityCooldownsKey(m map[string]int) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}
