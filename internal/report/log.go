package report

import (
	"time"

	"github.com/sirupsen/logrus"
)

// LogReporter writes one log entry per step and attachment.
type LogReporter struct {
	log logrus.FieldLogger
}

// NewLogReporter returns a reporter logging through log.
func NewLogReporter(log logrus.FieldLogger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) Step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	entry := r.log.WithFields(logrus.Fields{
		"step":     name,
		"duration": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Error("step failed")
		return err
	}
	entry.Debug("step passed")
	return nil
}

func (r *LogReporter) Attach(name, path, mimeType string) {
	r.log.WithFields(logrus.Fields{
		"attachment": name,
		"path":       path,
		"type":       mimeType,
	}).Info("attachment recorded")
}
