package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllureReporterFinish(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(t.TempDir(), "inventory.png")
	require.NoError(t, os.WriteFile(shot, []byte("png"), 0644))

	r := NewAllureReporter(dir, "TestLoginStandardUser")
	r.Label("feature", "login")

	require.NoError(t, r.Step("Enter username", func() error { return nil }))
	require.Error(t, r.Step("Click login", func() error { return errors.New("timeout") }))
	r.Attach("inventory", shot, "image/png")

	path, err := r.Finish(StatusFailed)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "-result.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var res allureResult
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, "TestLoginStandardUser", res.Name)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "finished", res.Stage)
	require.NotNil(t, res.StatusDetails)
	assert.Equal(t, "timeout", res.StatusDetails.Message)

	require.Len(t, res.Steps, 2)
	assert.Equal(t, StatusPassed, res.Steps[0].Status)
	assert.Equal(t, StatusFailed, res.Steps[1].Status)

	require.Len(t, res.Attachments, 1)
	att := res.Attachments[0]
	assert.Equal(t, "inventory", att.Name)
	assert.True(t, strings.HasSuffix(att.Source, "-attachment.png"))
	copied, err := os.ReadFile(filepath.Join(dir, att.Source))
	require.NoError(t, err)
	assert.Equal(t, "png", string(copied))

	assert.Contains(t, res.Labels, allureLabel{Name: "feature", Value: "login"})
}

func TestAllureNestedSteps(t *testing.T) {
	r := NewAllureReporter(t.TempDir(), "TestCheckout")

	err := r.Step("Fill checkout form", func() error {
		require.NoError(t, r.Step("Enter first name", func() error { return nil }))
		return r.Step("Enter postal code", func() error { return errors.New("field missing") })
	})
	require.Error(t, err)
	require.NoError(t, r.Step("Cancel", func() error { return nil }))

	path, err := r.Finish(StatusFailed)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var res allureResult
	require.NoError(t, json.Unmarshal(data, &res))

	require.Len(t, res.Steps, 2)
	parent := res.Steps[0]
	assert.Equal(t, "Fill checkout form", parent.Name)
	assert.Equal(t, StatusFailed, parent.Status)
	require.Len(t, parent.Steps, 2)
	assert.Equal(t, "Enter first name", parent.Steps[0].Name)
	assert.Equal(t, "Enter postal code", parent.Steps[1].Name)
	assert.Equal(t, StatusFailed, parent.Steps[1].Status)
	assert.Equal(t, "Cancel", res.Steps[1].Name)
	assert.Empty(t, res.Steps[1].Steps)

	require.NotNil(t, res.StatusDetails)
	assert.Equal(t, "field missing", res.StatusDetails.Message)
}

func TestAllureHistoryIDIsStable(t *testing.T) {
	dir := t.TempDir()

	read := func() allureResult {
		path, err := NewAllureReporter(dir, "TestSort").Finish(StatusPassed)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var res allureResult
		require.NoError(t, json.Unmarshal(data, &res))
		return res
	}

	first, second := read(), read()
	assert.NotEqual(t, first.UUID, second.UUID)
	assert.Equal(t, first.HistoryID, second.HistoryID)
}

func TestAllureMissingAttachment(t *testing.T) {
	r := NewAllureReporter(t.TempDir(), "TestMissing")
	r.Attach("gone", filepath.Join(t.TempDir(), "gone.png"), "image/png")

	_, err := r.Finish(StatusPassed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone")
}

func TestAttachmentExt(t *testing.T) {
	assert.Equal(t, ".png", attachmentExt(Attachment{Path: "a/b.png"}))
	assert.Equal(t, ".json", attachmentExt(Attachment{Path: "a/b", MimeType: "application/json"}))
	assert.Equal(t, "", attachmentExt(Attachment{Path: "a/b"}))
}
