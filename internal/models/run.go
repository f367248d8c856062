package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid test run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
	RunStatusBroken  RunStatus = "broken"
)

// Run is one recorded execution of a test or smoke check
type Run struct {
	ID         uuid.UUID
	Name       string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
}

// StepRecord is one persisted step of a run
type StepRecord struct {
	ID             uuid.UUID
	RunID          uuid.UUID
	Name           string
	Status         string
	Error          string
	AttachmentPath string
	StartedAt      time.Time
	Duration       time.Duration
}

// Domain errors
var (
	ErrInvalidRunName       = errors.New("run name cannot be empty")
	ErrRunAlreadyFinished   = errors.New("run is already finished")
	ErrInvalidRunStatus     = errors.New("invalid run status")
	ErrInvalidStepName      = errors.New("step name cannot be empty")
	ErrStepWithoutRun       = errors.New("step must belong to a run")
	ErrNegativeStepDuration = errors.New("step duration cannot be negative")
)

// NewRun creates a running run with validation
func NewRun(name string) (*Run, error) {
	if name == "" {
		return nil, ErrInvalidRunName
	}
	return &Run{
		ID:        uuid.New(),
		Name:      name,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Finish moves a running run to a terminal status
func (r *Run) Finish(status RunStatus) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: status %s", ErrRunAlreadyFinished, r.Status)
	}
	switch status {
	case RunStatusPassed, RunStatusFailed, RunStatusBroken:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRunStatus, status)
	}

	now := time.Now()
	r.Status = status
	r.FinishedAt = &now
	return nil
}

// IsRunning returns true while the run has not finished
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// Duration returns the elapsed run time, up to now for running runs
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// NewStepRecord creates a step record for runID
func NewStepRecord(runID uuid.UUID, name, status string, startedAt time.Time, d time.Duration) (*StepRecord, error) {
	if runID == uuid.Nil {
		return nil, ErrStepWithoutRun
	}
	if name == "" {
		return nil, ErrInvalidStepName
	}
	if d < 0 {
		return nil, ErrNegativeStepDuration
	}
	return &StepRecord{
		ID:        uuid.New(),
		RunID:     runID,
		Name:      name,
		Status:    status,
		StartedAt: startedAt,
		Duration:  d,
	}, nil
}
