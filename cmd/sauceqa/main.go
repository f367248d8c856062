package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser"
	internalcli "github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/cli"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/database"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/logging"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/pages"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/report"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/repository"
)

var version = "0.1.0"

// env carries the resolved settings and logger into every command
type env struct {
	settings *config.Settings
	log      *logrus.Logger
	closeLog func() error
}

func (e *env) before(c *cli.Context) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = settings.LogLevel
	logCfg.Dir = settings.LogDir
	if c.Bool("verbose") {
		logCfg.Level = "debug"
	}
	log, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}

	e.settings = settings
	e.log = log
	e.closeLog = closeLog
	return nil
}

func (e *env) after(*cli.Context) error {
	if e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// SettingsCommand prints the resolved settings with passwords masked
func SettingsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Print the resolved framework settings",
		Action: func(c *cli.Context) error {
			masked := *e.settings
			if masked.StandardPassword != "" {
				masked.StandardPassword = "********"
			}

			out := map[string]any{
				"base_url":           masked.BaseURL,
				"browser":            masked.BrowserSettings(),
				"retry_count":        masked.RetryCount,
				"parallel_workers":   masked.ParallelWorkers,
				"standard_user":      masked.StandardUser,
				"locked_user":        masked.LockedUser,
				"problem_user":       masked.ProblemUser,
				"performance_user":   masked.PerformanceUser,
				"password":           masked.StandardPassword,
				"allure_results_dir": masked.AllureResultsDir,
				"html_report_path":   masked.HTMLReportPath,
				"screenshots_dir":    masked.ScreenshotsDir,
				"videos_dir":         masked.VideosDir,
				"log_dir":            masked.LogDir,
				"log_level":          masked.LogLevel,
				"excel_file_path":    masked.ExcelFilePath,
			}
			enc := yaml.NewEncoder(c.App.Writer)
			defer enc.Close()
			return enc.Encode(out)
		},
	}
}

func openPage(e *env, record bool) (*browser.Session, browser.Page, error) {
	opts := browser.LaunchOptions{}
	if record {
		opts.VideosDir = e.settings.VideosDir
	}
	session, err := browser.Launch(e.settings.BrowserSettings(), opts)
	if err != nil {
		return nil, nil, err
	}
	page, err := session.NewPage()
	if err != nil {
		session.Close()
		return nil, nil, err
	}
	return session, page, nil
}

// UsernamesCommand prints the usernames advertised on the login page
func UsernamesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "usernames",
		Usage: "List the accepted usernames shown on the login page",
		Action: func(c *cli.Context) error {
			session, page, err := openPage(e, false)
			if err != nil {
				return err
			}
			defer session.Close()

			login := pages.NewLoginPage(page, e.settings, pages.WithLogger(e.log))
			if err := login.Navigate(); err != nil {
				return err
			}
			for _, name := range login.GetAvailableUsernames() {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}

// SmokeCommand logs in once and writes Allure and HTML reports
func SmokeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Log in as one user category and check the landing page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "user",
				Value: string(config.CategoryStandard),
				Usage: "user category: standard, locked, problem or performance",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "store the run in the results database and record a video",
			},
		},
		Action: func(c *cli.Context) error {
			return runSmoke(c.Context, e, config.ParseCategory(c.String("user")), c.Bool("record"))
		},
	}
}

func runSmoke(ctx context.Context, e *env, category config.Category, record bool) error {
	name := "smoke " + string(category)
	log := e.log.WithField("run", name)

	allure := report.NewAllureReporter(e.settings.AllureResultsDir, name)
	allure.Label("suite", "smoke")
	allure.Label("user", string(category))
	html := report.NewHTMLReporter(e.settings.HTMLReportPath, name)
	reporters := []report.Reporter{report.NewLogReporter(log), allure, html}

	var finish func(models.RunStatus)
	if record {
		store, closeStore, err := openRunStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		run, err := models.NewRun(name)
		if err != nil {
			return err
		}
		if err := store.CreateRun(ctx, run); err != nil {
			return err
		}
		reporters = append(reporters, report.NewStoreReporter(ctx, store, run.ID, log))
		finish = func(status models.RunStatus) {
			if err := run.Finish(status); err != nil {
				log.WithError(err).Warn("run not finished")
				return
			}
			if err := store.FinishRun(ctx, run); err != nil {
				log.WithError(err).Warn("failed to store run result")
			}
		}
		log = log.WithField("run_id", run.ID)
	}

	session, page, err := openPage(e, record)
	if err != nil {
		if finish != nil {
			finish(models.RunStatusBroken)
		}
		return err
	}
	defer session.Close()

	res, smokeErr := internalcli.RunSmoke(page, e.settings, category,
		pages.WithLogger(log), pages.WithReporter(report.Multi(reporters...)))

	status, runStatus := report.StatusPassed, models.RunStatusPassed
	switch {
	case errors.Is(smokeErr, internalcli.ErrSmokeFailed):
		status, runStatus = report.StatusFailed, models.RunStatusFailed
	case smokeErr != nil:
		status, runStatus = report.StatusBroken, models.RunStatusBroken
	}
	if finish != nil {
		finish(runStatus)
	}

	resultPath, err := allure.Finish(status)
	if err != nil {
		log.WithError(err).Warn("failed to write allure result")
	}
	if err := html.Finish(status); err != nil {
		log.WithError(err).Warn("failed to write html report")
	}

	log.WithFields(logrus.Fields{
		"user":       res.Username,
		"logged_in":  res.LoggedIn,
		"screenshot": res.Screenshot,
		"allure":     resultPath,
		"html":       e.settings.HTMLReportPath,
	}).Info("smoke finished")
	return smokeErr
}

func openRunStore(ctx context.Context) (*repository.RunRepository, func(), error) {
	cfg, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("results database not configured: %w", err)
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRunRepository(db), func() { db.Close() }, nil
}

// StorefrontCommand serves the local storefront fixture
func StorefrontCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "storefront",
		Usage: "Serve the local storefront used by the e2e suite",
		Action: func(c *cli.Context) error {
			deps, err := internalcli.BuildStorefront(config.LoadServerConfig(os.Getenv), e.log)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// MigrateCommand creates the run history tables
func MigrateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the test-run history tables",
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
			defer cancel()

			cfg, err := config.LoadPostgresConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("failed to load postgres config: %w", err)
			}
			db, err := database.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()
			e.log.Info("connected to database")

			return database.RunMigrations(ctx, db, e.log)
		},
	}
}

func newApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:    "sauceqa",
		Usage:   "Page object UI checks for the Swag Labs storefront",
		Version: version,
		Flags: []cli.Flag{
			// -v belongs to the built-in --version flag.
			&cli.BoolFlag{Name: "verbose", Usage: "log at debug level"},
		},
		Before: e.before,
		After:  e.after,
		Commands: []*cli.Command{
			SettingsCommand(e),
			UsernamesCommand(e),
			SmokeCommand(e),
			StorefrontCommand(e),
			MigrateCommand(e),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
