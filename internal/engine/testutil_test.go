package engine

func minimalState() *GameState {
	return &GameState{
		SchemaVersion: "1.0",
		CampaignID:    "camp-1",
		SessionID:     "sess-1",
		Map: GameMap{
			ID:   "map-1",
			Name: "Test Room",
			Grid: Grid{Kind: "square", Size: GridSize{W: 10, H: 10}, CellSize: 5},
		},
		Entities: EntityBuckets{
			Players: []Entity{
				{ID: "p1", Kind: EntityPlayer, Name: "Arin", Position: Position{X: 0, Y: 0}, Stats: Stats{HPCurrent: 10, HPMax: 10, AC: 12}},
			},
			NPCs: []Entity{
				{ID: "n1", Kind: EntityNPC, Name: "Goblin", Position: Position{X: 1, Y: 0}, Stats: Stats{HPCurrent: 7, HPMax: 7, AC: 13}},
			},
		},
		Combat: CombatState{Mode: ModeExploration},
		RNG:    RNGState{Mode: RNGManual},
	}
}
