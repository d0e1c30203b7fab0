// Command replayctl is a local-only CLI over the engine: load a
// scenario bundle, run it to a combat resolution, and verify a stored
// replay's attestation. No HTTP server is involved anywhere in this
// binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ctclostio/tabletop-engine/internal/controller"
	"github.com/ctclostio/tabletop-engine/internal/engine"
	"github.com/ctclostio/tabletop-engine/internal/resolvers"
	"github.com/ctclostio/tabletop-engine/internal/rules"
	"github.com/ctclostio/tabletop-engine/internal/store"
	"github.com/ctclostio/tabletop-engine/pkg/logger"
)

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: "info"})

	var err error
	switch os.Args[1] {
	case "simulate":
		err = runSimulate(os.Args[2:], log)
	case "verify":
		err = runVerify(os.Args[2:], log)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "replayctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: replayctl simulate --scenario <path> --db <dsn>")
	fmt.Fprintln(os.Stderr, "       replayctl verify --replay-id <id> --db <dsn> --secret <hmac-secret>")
}

func runSimulate(args []string, log *logger.Logger) error {
	fs := newFlagSet("simulate")
	scenarioPath := fs.String("scenario", "", "path to a scenario YAML document")
	dsn := fs.String("db", "replayctl.db", "sqlite path (or postgres DSN with --postgres)")
	usePostgres := fs.Bool("postgres", false, "treat --db as a postgres DSN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenarioPath == "" {
		return fmt.Errorf("--scenario is required")
	}

	data, err := os.ReadFile(*scenarioPath)
	if err != nil {
		return fmt.Errorf("reading scenario file: %w", err)
	}
	doc, err := store.ParseScenarioYAML(data)
	if err != nil {
		return err
	}

	db, err := connect(*dsn, *usePostgres)
	if err != nil {
		return err
	}
	if err := store.Migrate(db); err != nil {
		return err
	}

	registry := rules.NewDefaultRegistry()
	ruleModule, err := registry.Get("baseline-d20")
	if err != nil {
		return err
	}
	deps := engine.Deps{Rules: ruleModule}

	initial := doc.State
	initialHash := engine.StateHash(&initial)

	rollInitiative := engine.Action{Type: engine.ActionRollInitiative}
	applied := resolvers.Apply(&initial, rollInitiative, deps)
	if !applied.OK {
		return fmt.Errorf("rolling initiative: %v", applied.Errors)
	}

	difficulty := store.DifficultyFromMetadata(doc.Metadata)
	result := controller.SimulateCombat(applied.NextState, difficulty, deps, 100)
	finalHash := engine.StateHash(result.FinalState)

	log.Info().
		Str("initial_hash", initialHash).
		Str("final_hash", finalHash).
		Uint32("rounds", result.Rounds).
		Int("events", len(result.Events)).
		Msg("simulation complete")

	ctx := context.Background()
	scenarioRepo := store.NewScenarioRepository(db)
	bundle := &store.ScenarioBundle{
		Name:          doc.Name,
		Tags:          doc.Tags,
		EngineVersion: store.EngineVersion,
		Payload:       data,
	}
	if err := scenarioRepo.Create(ctx, bundle); err != nil {
		return err
	}

	fmt.Printf("scenario_id=%s initial_hash=%s final_hash=%s rounds=%d\n",
		bundle.ID, initialHash, finalHash, result.Rounds)
	return nil
}

func runVerify(args []string, log *logger.Logger) error {
	fs := newFlagSet("verify")
	replayID := fs.String("replay-id", "", "replay bundle id to verify")
	dsn := fs.String("db", "replayctl.db", "sqlite path (or postgres DSN with --postgres)")
	usePostgres := fs.Bool("postgres", false, "treat --db as a postgres DSN")
	secret := fs.String("secret", "", "HMAC secret the replay bundle was signed with")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *replayID == "" || *secret == "" {
		return fmt.Errorf("--replay-id and --secret are required")
	}

	db, err := connect(*dsn, *usePostgres)
	if err != nil {
		return err
	}

	repo := store.NewReplayRepository(db)
	bundle, err := repo.GetByID(context.Background(), *replayID)
	if err != nil {
		return err
	}

	attestor := store.NewAttestor(*secret)
	stepsHash := fmt.Sprintf("%x", len(bundle.Payload))
	if err := attestor.Verify(bundle.Signature, bundle.InitialStateHash, stepsHash, bundle.FinalStateHash); err != nil {
		return err
	}

	log.Info().Str("replay_id", bundle.ID).Msg("replay attestation verified")
	fmt.Println("ok")
	return nil
}

func connect(dsn string, postgres bool) (*store.DB, error) {
	cfg := store.Config{Driver: store.DriverSQLite, DSN: dsn}
	if postgres {
		cfg.Driver = store.DriverPostgres
	}
	return store.Connect(cfg)
}
