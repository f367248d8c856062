//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/logging"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/report"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/repository/testutil"
)

var _ report.StepStore = (*RunRepository)(nil)

func TestRunRepository_CreateAndFinish_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(testutil.SetupTestDatabase(t).DB)

	run, err := models.NewRun("smoke standard")
	require.NoError(t, err)
	require.NoError(t, repo.CreateRun(ctx, run))

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Name, got.Name)
	assert.Equal(t, models.RunStatusRunning, got.Status)
	assert.Nil(t, got.FinishedAt)

	require.NoError(t, run.Finish(models.RunStatusPassed))
	require.NoError(t, repo.FinishRun(ctx, run))

	got, err = repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusPassed, got.Status)
	require.NotNil(t, got.FinishedAt)
	assert.WithinDuration(t, *run.FinishedAt, *got.FinishedAt, time.Millisecond)
}

func TestRunRepository_NotFound_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(testutil.SetupTestDatabase(t).DB)

	_, err := repo.GetRun(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrRunNotFound))

	run, err := models.NewRun("never stored")
	require.NoError(t, err)
	require.NoError(t, run.Finish(models.RunStatusFailed))
	assert.ErrorIs(t, repo.FinishRun(ctx, run), ErrRunNotFound)
}

func TestRunRepository_Steps_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(testutil.SetupTestDatabase(t).DB)

	run, err := models.NewRun("cart total")
	require.NoError(t, err)
	require.NoError(t, repo.CreateRun(ctx, run))

	// Steps recorded through the reporter land in execution order
	rep := report.NewStoreReporter(ctx, repo, run.ID, logging.NewNullLogger())
	require.NoError(t, rep.Step("open login page", func() error { return nil }))
	assert.Error(t, rep.Step("click login", func() error { return errors.New("timeout") }))
	rep.Attach("inventory", "reports/screenshots/inventory.png", "image/png")

	steps, err := repo.ListSteps(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, "open login page", steps[0].Name)
	assert.Equal(t, "passed", steps[0].Status)
	assert.Equal(t, "click login", steps[1].Name)
	assert.Equal(t, "failed", steps[1].Status)
	assert.Equal(t, "timeout", steps[1].Error)
	assert.Equal(t, "attach inventory", steps[2].Name)
	assert.Equal(t, "reports/screenshots/inventory.png", steps[2].AttachmentPath)

	empty, err := repo.ListSteps(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRunRepository_StepWithoutRun_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(testutil.SetupTestDatabase(t).DB)

	step, err := models.NewStepRecord(uuid.New(), "orphan", "passed", time.Now(), time.Second)
	require.NoError(t, err)
	assert.Error(t, repo.RecordStep(ctx, step), "foreign key should reject unknown run")
}
