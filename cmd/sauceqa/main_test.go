package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCommandMasksPassword(t *testing.T) {
	dir := t.TempDir()
	for key, value := range map[string]string{
		"BASE_URL":           "http://localhost:9999",
		"STANDARD_PASSWORD":  "hunter2",
		"ALLURE_RESULTS_DIR": filepath.Join(dir, "allure"),
		"HTML_REPORT_PATH":   filepath.Join(dir, "report.html"),
		"SCREENSHOTS_DIR":    filepath.Join(dir, "shots"),
		"VIDEOS_DIR":         filepath.Join(dir, "videos"),
		"LOG_DIR":            "",
	} {
		t.Setenv(key, value)
	}

	for name, args := range map[string][]string{
		"plain":   {"sauceqa", "settings"},
		"verbose": {"sauceqa", "--verbose", "settings"},
	} {
		t.Run(name, func(t *testing.T) {
			app := newApp()
			var out bytes.Buffer
			app.Writer = &out

			require.NotPanics(t, func() {
				require.NoError(t, app.Run(args))
			})

			assert.Contains(t, out.String(), "base_url: http://localhost:9999")
			assert.Contains(t, out.String(), "********")
			assert.NotContains(t, out.String(), "hunter2")
			assert.Contains(t, out.String(), "headless: false")
		})
	}
}

func TestVersionFlag(t *testing.T) {
	for _, arg := range []string{"--version", "-v"} {
		t.Run(arg, func(t *testing.T) {
			app := newApp()
			var out bytes.Buffer
			app.Writer = &out

			require.NotPanics(t, func() {
				require.NoError(t, app.Run([]string{"sauceqa", arg}))
			})
			assert.Contains(t, out.String(), "version "+version)
		})
	}
}
