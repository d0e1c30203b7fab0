package engine

// Mode is GameState.combat.mode.
type Mode string

const (
	ModeExploration Mode = "exploration"
	ModeCombat      Mode = "combat"
)

type CombatState struct {
	Mode            Mode     `json:"mode" yaml:"mode"`
	Round           uint32   `json:"round" yaml:"round"`
	ActiveEntityID  *string  `json:"active_entity_id,omitempty" yaml:"active_entity_id,omitempty"`
	InitiativeOrder []string `json:"initiative_order" yaml:"initiative_order"`
}

type LogState struct {
	Events []Event `json:"events" yaml:"events"`
}

type HoveredCell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// UIState is caller-owned display state. The core never mutates it
// except to carry it through unchanged on a cloned state; it plays no
// part in state_hash or any determinism contract.
type UIState struct {
	SelectedEntityID *string      `json:"selected_entity_id,omitempty" yaml:"selected_entity_id,omitempty"`
	HoveredCell      *HoveredCell `json:"hovered_cell,omitempty" yaml:"hovered_cell,omitempty"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyDeadly Difficulty = "deadly"
)

// GameState is the root, immutable-from-the-caller's-perspective
// simulation state. Every substructure is exclusively owned by it;
// apply_action always hands back a freshly cloned instance (clone.go)
// rather than an aliased mutation of the input.
type GameState struct {
	SchemaVersion string `json:"schema_version" yaml:"schema_version"`
	CampaignID    string `json:"campaign_id" yaml:"campaign_id"`
	SessionID     string `json:"session_id" yaml:"session_id"`
	Timestamp     string `json:"timestamp" yaml:"timestamp"`

	Map      GameMap       `json:"map" yaml:"map"`
	Entities EntityBuckets `json:"entities" yaml:"entities"`
	Combat   CombatState   `json:"combat" yaml:"combat"`
	RNG      RNGState      `json:"rng" yaml:"rng"`
	Log      LogState      `json:"log" yaml:"log"`
	UI       UIState       `json:"ui" yaml:"ui"`

	Difficulty *Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// ActiveEntity returns the entity whose turn it is, or nil outside
// combat or if the ID is dangling (the validator rejects the latter at
// ingress, but resolvers must not assume they only ever see validated
// input mid-pipeline).
func (g *GameState) ActiveEntity() *Entity {
	if g.Combat.ActiveEntityID == nil {
		return nil
	}
	return g.Entities.ByID(*g.Combat.ActiveEntityID)
}

// EntityFaction reports which side an entity belongs to for combat-end
// and visibility-faction checks.
func (g *GameState) EntityFaction(e *Entity) string {
	switch e.Kind {
	case EntityPlayer:
		return "players"
	case EntityNPC:
		return "npcs"
	default:
		return "objects"
	}
}
