package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Schema creates the run history tables. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS test_runs (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	status VARCHAR(20) NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS test_steps (
	id UUID PRIMARY KEY,
	run_id UUID NOT NULL REFERENCES test_runs(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	status VARCHAR(20) NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	attachment_path TEXT NOT NULL DEFAULT '',
	started_at TIMESTAMPTZ NOT NULL,
	duration_ms BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_test_runs_status ON test_runs(status);
CREATE INDEX IF NOT EXISTS idx_test_steps_run_id ON test_steps(run_id, started_at);
`

// RunMigrations creates the necessary database tables
func RunMigrations(ctx context.Context, db *sql.DB, log logrus.FieldLogger) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create run history tables: %w", err)
	}

	log.Info("database migrations completed successfully")
	return nil
}
