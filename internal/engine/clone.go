package engine

// Clone returns a deeply independent copy of g. No slice, map, or
// pointer in the result aliases anything in g — mutating the clone
// must never be observable through the original, and vice versa. This
// is the single clone primitive apply_action relies on to guarantee
// hard input immutability.
func (g *GameState) Clone() *GameState {
	out := &GameState{
		SchemaVersion: g.SchemaVersion,
		CampaignID:    g.CampaignID,
		SessionID:     g.SessionID,
		Timestamp:     g.Timestamp,
		Difficulty:    clonePtr(g.Difficulty),
	}
	out.Map = cloneMap(g.Map)
	out.Entities = cloneEntities(g.Entities)
	out.Combat = cloneCombat(g.Combat)
	out.RNG = cloneRNG(g.RNG)
	out.Log = cloneLog(g.Log)
	out.UI = cloneUI(g.UI)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneMap(m GameMap) GameMap {
	out := GameMap{
		ID:              m.ID,
		Name:            m.Name,
		Grid:            m.Grid,
		FogOfWarEnabled: m.FogOfWarEnabled,
	}
	out.Terrain = append([]Tile(nil), m.Terrain...)
	out.index()
	return out
}

func cloneEntity(e Entity) Entity {
	out := e
	out.Conditions = append([]string(nil), e.Conditions...)
	out.Inventory = make([]InventoryItem, len(e.Inventory))
	for i, item := range e.Inventory {
		it := item
		it.Tags = append([]string(nil), item.Tags...)
		out.Inventory[i] = it
	}
	out.Token.SpriteKey = clonePtr(e.Token.SpriteKey)
	out.Controller.PlayerID = clonePtr(e.Controller.PlayerID)
	if e.AbilityCooldowns != nil {
		out.AbilityCooldowns = make(map[string]int, len(e.AbilityCooldowns))
		for k, v := range e.AbilityCooldowns {
			out.AbilityCooldowns[k] = v
		}
	}
	out.Resistances = append([]string(nil), e.Resistances...)
	return out
}

func cloneEntitySlice(s []Entity) []Entity {
	out := make([]Entity, len(s))
	for i, e := range s {
		out[i] = cloneEntity(e)
	}
	return out
}

func cloneEntities(b EntityBuckets) EntityBuckets {
	return EntityBuckets{
		Players: cloneEntitySlice(b.Players),
		NPCs:    cloneEntitySlice(b.NPCs),
		Objects: cloneEntitySlice(b.Objects),
	}
}

func cloneCombat(c CombatState) CombatState {
	return CombatState{
		Mode:            c.Mode,
		Round:           c.Round,
		ActiveEntityID:  clonePtr(c.ActiveEntityID),
		InitiativeOrder: append([]string(nil), c.InitiativeOrder...),
	}
}

func cloneRNG(r RNGState) RNGState {
	out := RNGState{
		Mode:          r.Mode,
		Seed:          clonePtr(r.Seed),
		RollsConsumed: r.RollsConsumed,
	}
	out.LastRolls = append([]RollRecord(nil), r.LastRolls...)
	return out
}

func cloneLog(l LogState) LogState {
	return LogState{Events: append([]Event(nil), l.Events...)}
}

func cloneUI(u UIState) UIState {
	out := UIState{SelectedEntityID: clonePtr(u.SelectedEntityID)}
	if u.HoveredCell != nil {
		hc := *u.HoveredCell
		out.HoveredCell = &hc
	}
	return out
}
