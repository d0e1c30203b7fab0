package store

import (
	"time"

	"github.com/google/uuid"
)

// ScenarioBundle is a durable, named starting GameState plus the
// engine version it was authored against.
type ScenarioBundle struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Tags          []string  `json:"tags" db:"-"`
	EngineVersion string    `json:"engine_version" db:"engine_version"`
	Payload       []byte    `json:"payload" db:"payload"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ReplayBundle is a durable record of one applied action sequence: the
// scenario it started from, the state hashes bracketing it, and a
// signature attesting the record has not been altered since signing.
type ReplayBundle struct {
	ID               string    `json:"id" db:"id"`
	ScenarioID       string    `json:"scenario_id" db:"scenario_id"`
	EngineVersion    string    `json:"engine_version" db:"engine_version"`
	InitialStateHash string    `json:"initial_state_hash" db:"initial_state_hash"`
	FinalStateHash   string    `json:"final_state_hash" db:"final_state_hash"`
	Signature        string    `json:"signature" db:"signature"`
	Payload          []byte    `json:"payload" db:"payload"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// NewBundleID mints a fresh bundle identifier. Bundle repositories
// never derive IDs from content so two bundles with identical payloads
// remain distinguishable records.
func NewBundleID() string {
	return uuid.NewString()
}
