// Package config loads engine-level configuration from environment
// variables: which rule module is active, the NPC planner's safety
// bounds, and the storage backend replayctl connects to.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds every tunable the engine and its CLI need at startup.
type Config struct {
	Engine  EngineConfig
	Storage StorageConfig
	Auth    AuthConfig
}

// EngineConfig governs the active rule module and the safety bounds
// the pathfinder and planner run under. These are not part of
// GameState — two processes with different EngineConfig but the same
// seed still produce the same state_hash, since nothing here feeds the
// RNG stream or the event log.
type EngineConfig struct {
	RuleModuleID     string
	DefaultVision    int
	PathfindMaxNodes int
	PlannerMaxRounds int
}

// StorageConfig selects and configures the scenario/replay backend.
type StorageConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// AuthConfig holds the HMAC secret replay bundles are signed with.
type AuthConfig struct {
	AttestationSecret string
}

// Load reads configuration from environment variables, falling back
// to defaults suited to local, single-player use of replayctl.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Engine.RuleModuleID = getEnv("ENGINE_RULE_MODULE", "baseline-d20")
	cfg.Engine.DefaultVision = getEnvAsInt("ENGINE_DEFAULT_VISION", 8)
	cfg.Engine.PathfindMaxNodes = getEnvAsInt("ENGINE_PATHFIND_MAX_NODES", 4096)
	cfg.Engine.PlannerMaxRounds = getEnvAsInt("ENGINE_PLANNER_MAX_ROUNDS", 100)

	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", "sqlite3")
	cfg.Storage.DSN = getEnv("STORAGE_DSN", "replayctl.db")
	cfg.Storage.MaxOpenConns = getEnvAsInt("STORAGE_MAX_OPEN_CONNS", 10)
	cfg.Storage.MaxIdleConns = getEnvAsInt("STORAGE_MAX_IDLE_CONNS", 5)

	cfg.Auth.AttestationSecret = getEnv("ATTESTATION_SECRET", "")

	return cfg, nil
}

// Validate checks that the loaded configuration is usable. It does not
// reach into the rule registry — a RuleModuleID that names an
// unregistered module is caught at the point the registry is queried,
// not here.
func (c *Config) Validate() error {
	if c.Engine.RuleModuleID == "" {
		return fmt.Errorf("config: engine rule module id is required")
	}
	if c.Engine.DefaultVision <= 0 {
		return fmt.Errorf("config: engine default vision must be positive")
	}
	if c.Engine.PathfindMaxNodes <= 0 {
		return fmt.Errorf("config: engine pathfind max nodes must be positive")
	}
	if c.Storage.Driver == "" {
		return fmt.Errorf("config: storage driver is required")
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("config: storage dsn is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return intValue
}
