package report

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReporter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	r := NewLogReporter(logger)

	require.NoError(t, r.Step("open login", func() error { return nil }))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "open login", entry.Data["step"])

	boom := errors.New("boom")
	require.ErrorIs(t, r.Step("click login", func() error { return boom }), boom)
	entry = hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, boom, entry.Data[logrus.ErrorKey])

	r.Attach("login", "/tmp/login.png", "image/png")
	entry = hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/tmp/login.png", entry.Data["path"])
	assert.Len(t, hook.AllEntries(), 3)
}
