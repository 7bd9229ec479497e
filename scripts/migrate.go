package main

import (
	"context"
	"log"

	"github.com/arogyahealth/triage-server/internal/infrastructure/clients/postgres"
	"github.com/arogyahealth/triage-server/pkg/config"
)

// Creates the triage history schema. Run once against a fresh database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	_, err = pgClient.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS triage_history (
			id               UUID PRIMARY KEY,
			uid              TEXT NOT NULL,
			timestamp        TIMESTAMPTZ NOT NULL,
			risk_level       TEXT NOT NULL,
			department       TEXT NOT NULL,
			symptoms         TEXT NOT NULL DEFAULT '',
			summary          TEXT NOT NULL DEFAULT '',
			urgency_score    INTEGER NOT NULL DEFAULT 5,
			confidence_score INTEGER NOT NULL DEFAULT 50
		)
	`)
	if err != nil {
		log.Fatalf("Failed to create triage_history table: %v", err)
	}

	_, err = pgClient.DB().ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_triage_history_uid_timestamp
			ON triage_history (uid, timestamp DESC)
	`)
	if err != nil {
		log.Fatalf("Failed to create triage_history index: %v", err)
	}

	log.Println("Migration complete")
}
