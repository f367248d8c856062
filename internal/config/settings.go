// Package config resolves framework settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/mstoykov/envconfig"
)

// Settings is the resolved framework configuration. It is built once per
// process and must be treated as read-only afterwards; page objects running in
// parallel share the same instance.
type Settings struct {
	// Application under test
	BaseURL string `envconfig:"BASE_URL" default:"https://www.saucedemo.com"`

	// Browser
	Browser        string `envconfig:"BROWSER" default:"chromium"`
	Headless       bool   `envconfig:"HEADLESS" default:"false"`
	ViewportWidth  int    `envconfig:"VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight int    `envconfig:"VIEWPORT_HEIGHT" default:"720"`

	// Timeout is the default wait in milliseconds.
	Timeout         int `envconfig:"TIMEOUT" default:"30000"`
	RetryCount      int `envconfig:"RETRY_COUNT" default:"2"`
	ParallelWorkers int `envconfig:"PARALLEL_WORKERS" default:"4"`

	// Credentials. Every user category logs in with StandardPassword.
	StandardUser     string `envconfig:"STANDARD_USER" default:"standard_user"`
	StandardPassword string `envconfig:"STANDARD_PASSWORD" default:"secret_sauce"`
	LockedUser       string `envconfig:"LOCKED_USER" default:"locked_out_user"`
	ProblemUser      string `envconfig:"PROBLEM_USER" default:"problem_user"`
	PerformanceUser  string `envconfig:"PERFORMANCE_USER" default:"performance_glitch_user"`

	// Reporting
	AllureResultsDir string `envconfig:"ALLURE_RESULTS_DIR" default:"reports/allure-results"`
	HTMLReportPath   string `envconfig:"HTML_REPORT_PATH" default:"reports/report.html"`
	ScreenshotsDir   string `envconfig:"SCREENSHOTS_DIR" default:"reports/screenshots"`
	VideosDir        string `envconfig:"VIDEOS_DIR" default:"reports/videos"`
	LogDir           string `envconfig:"LOG_DIR" default:"reports/logs"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`

	// Test data
	ExcelFilePath string `envconfig:"EXCEL_FILE_PATH" default:"TestData/TestCaseDocument.xlsx"`
}

// Load resolves settings through lookup and creates the output directories.
// Malformed values (for example TIMEOUT=abc) are returned as errors.
func Load(lookup func(string) (string, bool)) (*Settings, error) {
	s := &Settings{}
	if err := envconfig.Process("", s, lookup); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) ensureDirs() error {
	dirs := []string{
		s.AllureResultsDir,
		s.ScreenshotsDir,
		s.VideosDir,
		filepath.Dir(s.HTMLReportPath),
		s.LogDir,
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

var (
	once     sync.Once
	settings *Settings
	loadErr  error
)

// Get returns the process-wide settings, resolving them on first use from the
// environment and an optional .env file. Later calls return the same instance.
func Get() (*Settings, error) {
	once.Do(func() {
		// .env is optional
		_ = godotenv.Load()
		settings, loadErr = Load(os.LookupEnv)
	})
	return settings, loadErr
}

// TimeoutDuration returns Timeout as a time.Duration.
func (s *Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Millisecond
}

// Viewport is the browser window size in pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BrowserSettings is the browser-specific projection of Settings.
type BrowserSettings struct {
	Browser  string   `json:"browser"`
	Headless bool     `json:"headless"`
	Viewport Viewport `json:"viewport"`
	Timeout  int      `json:"timeout"`
}

// BrowserSettings returns the browser projection of the settings.
func (s *Settings) BrowserSettings() BrowserSettings {
	return BrowserSettings{
		Browser:  s.Browser,
		Headless: s.Headless,
		Viewport: Viewport{
			Width:  s.ViewportWidth,
			Height: s.ViewportHeight,
		},
		Timeout: s.Timeout,
	}
}
