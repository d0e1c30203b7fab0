package engine

import "fmt"

// EventType is the closed set of event types the core emits. Payload
// field names are part of the wire contract and must not drift from
// their documented shapes.
type EventType string

const (
	EventMoveApplied      EventType = "MOVE_APPLIED"
	EventAttackResolved   EventType = "ATTACK_RESOLVED"
	EventInitiativeRolled EventType = "INITIATIVE_ROLLED"
	EventTurnEnded        EventType = "TURN_ENDED"
	EventCombatEnded      EventType = "COMBAT_ENDED"
	EventRNGSeedSet       EventType = "RNG_SEED_SET"
	EventActionRejected   EventType = "ACTION_REJECTED"
)

// Event is an append-only log record. Payload is a concrete struct
// keyed by EventType, not a free-form map, so consumers never need to
// probe for optional fields.
type Event struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
}

// nextEventID formats the zero-padded, monotonically increasing ID
// pattern "evt-NNNN", based on how many events already exist in the log.
func nextEventID(existing int) string {
	return fmt.Sprintf("evt-%04d", existing+1)
}

// NewEvent builds an Event with the next sequential ID and a logical
// (non-wall-clock) timestamp derived from the log's current length, so
// two independent runs of the same action sequence produce byte-equal
// logs. Callers append the result to state.Log.Events themselves.
func NewEvent(state *GameState, t EventType, payload interface{}) Event {
	existing := len(state.Log.Events)
	return Event{
		ID:        nextEventID(existing),
		Timestamp: int64(existing + 1),
		Type:      t,
		Payload:   payload,
	}
}

// Event payload types, one per EventType. Field names match the wire
// contract exactly.

type MoveAppliedPayload struct {
	EntityID      string   `json:"entity_id"`
	From          Position `json:"from"`
	FinalPosition Position `json:"final_position"`
	Steps         int      `json:"steps"`
}

type AttackResolvedPayload struct {
	AttackerID     string `json:"attacker_id"`
	TargetID       string `json:"target_id"`
	RawRoll        int    `json:"raw_roll"`
	AttackModifier int    `json:"attack_modifier"`
	AttackRoll     int    `json:"attack_roll"`
	TargetBaseAC   int    `json:"target_base_ac"`
	ACModifier     int    `json:"ac_modifier"`
	EffectiveAC    int    `json:"effective_ac"`
	Disadvantage   bool   `json:"disadvantage"`
	Hit            bool   `json:"hit"`
	Damage         int    `json:"damage"`
	TargetHPAfter  int    `json:"target_hp_after"`
}

type InitiativeEntry struct {
	EntityID string `json:"entity_id"`
	Roll     int    `json:"roll"`
}

type InitiativeRolledPayload struct {
	Order []InitiativeEntry `json:"order"`
}

type TurnEndedPayload struct {
	EntityID     string `json:"entity_id"`
	NextEntityID string `json:"next_entity_id"`
	Round        uint32 `json:"round"`
}

type CombatEndedPayload struct {
	Winner string `json:"winner"` // "players" | "npcs"
}

type ActionRejectedPayload struct {
	Action  Action   `json:"action"`
	Reasons []string `json:"reasons"`
}

type RNGSeedSetPayload struct {
	Seed string `json:"seed"`
}
