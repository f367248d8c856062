package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
)

// ErrRunNotFound is returned when a run id has no row
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for test runs and their steps
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun inserts a run
func (r *RunRepository) CreateRun(ctx context.Context, run *models.Run) error {
	query := `
		INSERT INTO test_runs (id, name, status, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, run.ID, run.Name, string(run.Status), run.StartedAt, run.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// FinishRun stores the terminal status and finish time of run
func (r *RunRepository) FinishRun(ctx context.Context, run *models.Run) error {
	query := `
		UPDATE test_runs
		SET status = $1, finished_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, string(run.Status), run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// GetRun retrieves a run by id
func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `
		SELECT id, name, status, started_at, finished_at
		FROM test_runs
		WHERE id = $1
	`

	run := &models.Run{}
	var status string
	var finished sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&run.ID, &run.Name, &status, &run.StartedAt, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Status = models.RunStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, nil
}

// RecordStep inserts one step. It satisfies report.StepStore.
func (r *RunRepository) RecordStep(ctx context.Context, step *models.StepRecord) error {
	query := `
		INSERT INTO test_steps (id, run_id, name, status, error, attachment_path, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		step.ID,
		step.RunID,
		step.Name,
		step.Status,
		step.Error,
		step.AttachmentPath,
		step.StartedAt,
		step.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record step: %w", err)
	}
	return nil
}

// ListSteps returns the steps of a run in execution order
func (r *RunRepository) ListSteps(ctx context.Context, runID uuid.UUID) ([]models.StepRecord, error) {
	query := `
		SELECT id, run_id, name, status, error, attachment_path, started_at, duration_ms
		FROM test_steps
		WHERE run_id = $1
		ORDER BY started_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []models.StepRecord
	for rows.Next() {
		var s models.StepRecord
		var ms int64
		if err := rows.Scan(&s.ID, &s.RunID, &s.Name, &s.Status, &s.Error, &s.AttachmentPath, &s.StartedAt, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		s.Duration = time.Duration(ms) * time.Millisecond
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}

	return steps, nil
}
