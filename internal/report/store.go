package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
)

// StepStore persists steps of a run.
type StepStore interface {
	RecordStep(ctx context.Context, step *models.StepRecord) error
}

// StoreReporter writes every step and attachment to a StepStore. Store
// failures are logged and never change the step's outcome.
type StoreReporter struct {
	ctx   context.Context
	store StepStore
	runID uuid.UUID
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewStoreReporter returns a reporter recording steps of runID.
func NewStoreReporter(ctx context.Context, store StepStore, runID uuid.UUID, log logrus.FieldLogger) *StoreReporter {
	return &StoreReporter{
		ctx:   ctx,
		store: store,
		runID: runID,
		log:   log,
		now:   time.Now,
	}
}

func (r *StoreReporter) Step(name string, fn func() error) error {
	start := r.now()
	err := fn()

	status := StatusPassed
	if err != nil {
		status = StatusFailed
	}
	rec, recErr := models.NewStepRecord(r.runID, name, string(status), start, r.now().Sub(start))
	if recErr != nil {
		r.log.WithError(recErr).WithField("step", name).Warn("step not recorded")
		return err
	}
	if err != nil {
		rec.Error = err.Error()
	}
	r.save(rec)
	return err
}

func (r *StoreReporter) Attach(name, path, mimeType string) {
	rec, err := models.NewStepRecord(r.runID, "attach "+name, string(StatusPassed), r.now(), 0)
	if err != nil {
		r.log.WithError(err).WithField("attachment", name).Warn("attachment not recorded")
		return
	}
	rec.AttachmentPath = path
	r.save(rec)
}

func (r *StoreReporter) save(rec *models.StepRecord) {
	if err := r.store.RecordStep(r.ctx, rec); err != nil {
		r.log.WithError(err).WithField("step", rec.Name).Warn("failed to persist step")
	}
}
