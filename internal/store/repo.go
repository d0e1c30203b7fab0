package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ctclostio/tabletop-engine/pkg/logger"
)

// scenarioRow mirrors scenario_bundles' columns; Tags is stored
// comma-joined since sqlite has no native array type and this store
// targets both sqlite and postgres through one schema.
type scenarioRow struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Tags          string    `db:"tags"`
	EngineVersion string    `db:"engine_version"`
	Payload       []byte    `db:"payload"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r scenarioRow) toBundle() ScenarioBundle {
	var tags []string
	if r.Tags != "" {
		tags = strings.Split(r.Tags, ",")
	}
	return ScenarioBundle{
		ID:            r.ID,
		Name:          r.Name,
		Tags:          tags,
		EngineVersion: r.EngineVersion,
		Payload:       r.Payload,
		CreatedAt:     r.CreatedAt,
	}
}

// ScenarioRepository persists scenario bundles.
type ScenarioRepository struct {
	db *DB
}

func NewScenarioRepository(db *DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

func (r *ScenarioRepository) Create(ctx context.Context, b *ScenarioBundle) error {
	if b.ID == "" {
		b.ID = NewBundleID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO scenario_bundles (id, name, tags, engine_version, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		b.ID, b.Name, strings.Join(b.Tags, ","), b.EngineVersion, b.Payload, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: creating scenario bundle: %w", err)
	}
	logger.Debug().Str("scenario_id", b.ID).Msg("store: scenario bundle created")
	return nil
}

func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*ScenarioBundle, error) {
	var row scenarioRow
	query := `
		SELECT id, name, tags, engine_version, payload, created_at
		FROM scenario_bundles WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, r.db.rebind(query), id); err != nil {
		return nil, fmt.Errorf("store: fetching scenario bundle %q: %w", id, err)
	}
	b := row.toBundle()
	return &b, nil
}

func (r *ScenarioRepository) List(ctx context.Context) ([]ScenarioBundle, error) {
	var rows []scenarioRow
	query := `SELECT id, name, tags, engine_version, payload, created_at FROM scenario_bundles ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("store: listing scenario bundles: %w", err)
	}
	out := make([]ScenarioBundle, len(rows))
	for i, row := range rows {
		out[i] = row.toBundle()
	}
	return out, nil
}

// ReplayRepository persists replay bundles.
type ReplayRepository struct {
	db *DB
}

func NewReplayRepository(db *DB) *ReplayRepository {
	return &ReplayRepository{db: db}
}

func (r *ReplayRepository) Create(ctx context.Context, b *ReplayBundle) error {
	if b.ID == "" {
		b.ID = NewBundleID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO replay_bundles (
			id, scenario_id, engine_version, initial_state_hash,
			final_state_hash, signature, payload, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		b.ID, b.ScenarioID, b.EngineVersion, b.InitialStateHash,
		b.FinalStateHash, b.Signature, b.Payload, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: creating replay bundle: %w", err)
	}
	logger.Debug().Str("replay_id", b.ID).Msg("store: replay bundle created")
	return nil
}

func (r *ReplayRepository) GetByID(ctx context.Context, id string) (*ReplayBundle, error) {
	var b ReplayBundle
	query := `
		SELECT id, scenario_id, engine_version, initial_state_hash,
		       final_state_hash, signature, payload, created_at
		FROM replay_bundles WHERE id = ?`
	if err := r.db.GetContext(ctx, &b, r.db.rebind(query), id); err != nil {
		return nil, fmt.Errorf("store: fetching replay bundle %q: %w", id, err)
	}
	return &b, nil
}
