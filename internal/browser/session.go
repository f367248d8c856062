package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
)

// Session owns a Playwright driver, one browser and one browser context.
// Pages created from a session share cookies and storage.
type Session struct {
	pw          *playwright.Playwright
	browser     playwright.Browser
	context     playwright.BrowserContext
	contextOpts playwright.BrowserNewContextOptions
	timeout     int
}

// LaunchOptions tune Launch beyond the browser settings.
type LaunchOptions struct {
	// VideosDir enables video recording into the directory when set.
	VideosDir string
	// SlowMo slows every operation down by the given milliseconds.
	SlowMo float64
}

// BrowserType resolves a browser name to a Playwright browser type.
func BrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch strings.ToLower(name) {
	case "", "chromium", "chrome":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit", "safari":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// Launch starts Playwright, launches the configured browser and opens a
// context with the configured viewport and default timeout.
func Launch(bs config.BrowserSettings, opts LaunchOptions) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := BrowserType(pw, bs.Browser)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(bs.Headless),
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(opts.SlowMo)
	}

	browser, err := browserType.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", bs.Browser, err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  bs.Viewport.Width,
			Height: bs.Viewport.Height,
		},
	}
	if opts.VideosDir != "" {
		contextOpts.RecordVideo = &playwright.RecordVideo{
			Dir: opts.VideosDir,
		}
	}

	s := &Session{
		pw:          pw,
		browser:     browser,
		contextOpts: contextOpts,
		timeout:     bs.Timeout,
	}
	if s.context, err = s.newContext(); err != nil {
		browser.Close()
		pw.Stop()
		return nil, err
	}

	return s, nil
}

func (s *Session) newContext() (playwright.BrowserContext, error) {
	context, err := s.browser.NewContext(s.contextOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	if s.timeout > 0 {
		context.SetDefaultTimeout(float64(s.timeout))
		context.SetDefaultNavigationTimeout(float64(s.timeout))
	}
	return context, nil
}

// NewPage opens a new tab in the session's context.
func (s *Session) NewPage() (Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return Wrap(page), nil
}

// NewIsolatedPage opens a page in a fresh context that shares no cookies or
// storage with other pages. The returned function closes that context.
func (s *Session) NewIsolatedPage() (Page, func() error, error) {
	context, err := s.newContext()
	if err != nil {
		return nil, nil, err
	}
	page, err := context.NewPage()
	if err != nil {
		context.Close()
		return nil, nil, fmt.Errorf("failed to create page: %w", err)
	}
	return Wrap(page), func() error { return context.Close() }, nil
}

// Close tears down the context, the browser and the driver. Closing the
// context flushes recorded videos to disk.
func (s *Session) Close() error {
	var errs []error
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		s.pw = nil
	}
	return errors.Join(errs...)
}
