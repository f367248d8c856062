// Package pages implements page objects for the storefront under test. Each
// page wraps one browser tab, waits for its elements before acting and reads
// every value fresh from the live page.
package pages

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/report"
)

// VisibilityTimeout is the wait used by visibility checks when the caller
// passes no timeout.
const VisibilityTimeout = 5000

// Page is implemented by every page object.
type Page interface {
	IsLoaded() bool
}

// Option configures a Base.
type Option func(*Base)

// WithReporter routes steps and screenshots to r.
func WithReporter(r report.Reporter) Option {
	return func(b *Base) {
		b.reporter = r
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(log logrus.FieldLogger) Option {
	return func(b *Base) {
		b.log = log
	}
}

// Base carries the behaviour shared by every page object. Timeouts are in
// milliseconds; 0 selects the configured default.
type Base struct {
	page     browser.Page
	settings *config.Settings
	timeout  int
	reporter report.Reporter
	log      logrus.FieldLogger

	alertHandled bool
}

// NewBase wraps page with the given settings.
func NewBase(page browser.Page, settings *config.Settings, opts ...Option) Base {
	b := Base{
		page:     page,
		settings: settings,
		timeout:  settings.Timeout,
		reporter: report.Nop{},
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// BrowserPage returns the wrapped tab.
func (b *Base) BrowserPage() browser.Page {
	return b.page
}

// Settings returns the settings the page was built with.
func (b *Base) Settings() *config.Settings {
	return b.settings
}

func (b *Base) effective(timeout int) float64 {
	if timeout <= 0 {
		return float64(b.timeout)
	}
	return float64(timeout)
}

func (b *Base) step(name string, fn func() error) error {
	return b.reporter.Step(name, fn)
}

// NavigateTo opens url and waits for the network to go idle.
func (b *Base) NavigateTo(url string) error {
	return b.step("Navigate to "+url, func() error {
		if err := b.page.Goto(url, b.effective(0)); err != nil {
			return fmt.Errorf("failed to navigate to %s: %w", url, err)
		}
		return b.WaitForPageLoad(0)
	})
}

// WaitForPageLoad blocks until the page reaches the network idle state.
func (b *Base) WaitForPageLoad(timeout int) error {
	if err := b.page.WaitForLoadState(browser.LoadStateNetworkIdle, b.effective(timeout)); err != nil {
		return fmt.Errorf("failed waiting for page load: %w", err)
	}
	return nil
}

// WaitForElement waits until selector is visible and returns its locator.
func (b *Base) WaitForElement(selector string, timeout int) (browser.Locator, error) {
	loc := b.page.Locator(selector)
	if err := loc.WaitFor(browser.StateVisible, b.effective(timeout)); err != nil {
		return nil, fmt.Errorf("element %s not visible: %w", selector, err)
	}
	return loc, nil
}

// ClickElement waits for selector and clicks it once.
func (b *Base) ClickElement(selector string, timeout int) error {
	return b.step("Click element: "+selector, func() error {
		loc, err := b.WaitForElement(selector, timeout)
		if err != nil {
			return err
		}
		if err := loc.Click(); err != nil {
			return fmt.Errorf("failed to click %s: %w", selector, err)
		}
		return nil
	})
}

// FillText clears the input at selector and types text.
func (b *Base) FillText(selector, text string, timeout int) error {
	return b.step(fmt.Sprintf("Fill text '%s' in element: %s", text, selector), func() error {
		return b.fill(selector, text, timeout)
	})
}

func (b *Base) fill(selector, text string, timeout int) error {
	loc, err := b.WaitForElement(selector, timeout)
	if err != nil {
		return err
	}
	if err := loc.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", selector, err)
	}
	if err := loc.Fill(text); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// GetText returns the text content of selector once it is visible.
func (b *Base) GetText(selector string, timeout int) (string, error) {
	loc, err := b.WaitForElement(selector, timeout)
	if err != nil {
		return "", err
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return text, nil
}

// IsElementVisible reports whether selector becomes visible within timeout,
// VisibilityTimeout when 0. It never fails.
func (b *Base) IsElementVisible(selector string, timeout int) bool {
	if timeout <= 0 {
		timeout = VisibilityTimeout
	}
	err := b.page.Locator(selector).WaitFor(browser.StateVisible, float64(timeout))
	return err == nil
}

// IsElementPresent reports whether selector matches anything right now.
func (b *Base) IsElementPresent(selector string) bool {
	n, err := b.page.Locator(selector).Count()
	return err == nil && n > 0
}

// WaitForText waits until the element at selector contains text.
func (b *Base) WaitForText(selector, text string, timeout int) error {
	if err := b.page.Locator(selector).ContainsText(text, b.effective(timeout)); err != nil {
		return fmt.Errorf("text %q not found in %s: %w", text, selector, err)
	}
	return nil
}

// SelectDropdownOption selects option in the dropdown at selector.
func (b *Base) SelectDropdownOption(selector, option string, timeout int) error {
	return b.step(fmt.Sprintf("Select option '%s' from dropdown: %s", option, selector), func() error {
		loc, err := b.WaitForElement(selector, timeout)
		if err != nil {
			return err
		}
		if err := loc.SelectOption(option); err != nil {
			return fmt.Errorf("failed to select %s in %s: %w", option, selector, err)
		}
		return nil
	})
}

// HoverElement moves the pointer over selector.
func (b *Base) HoverElement(selector string, timeout int) error {
	return b.step("Hover over element: "+selector, func() error {
		loc, err := b.WaitForElement(selector, timeout)
		if err != nil {
			return err
		}
		if err := loc.Hover(); err != nil {
			return fmt.Errorf("failed to hover %s: %w", selector, err)
		}
		return nil
	})
}

// ScrollToElement scrolls selector into view.
func (b *Base) ScrollToElement(selector string, timeout int) error {
	return b.step("Scroll to element: "+selector, func() error {
		loc, err := b.WaitForElement(selector, timeout)
		if err != nil {
			return err
		}
		if err := loc.ScrollIntoViewIfNeeded(); err != nil {
			return fmt.Errorf("failed to scroll to %s: %w", selector, err)
		}
		return nil
	})
}

// TakeScreenshot captures the full page into the screenshots directory as
// <name>.png and attaches it to the reporter. An empty name becomes
// screenshot_<unix seconds>.
func (b *Base) TakeScreenshot(name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("screenshot_%d", time.Now().Unix())
	}
	path := filepath.Join(b.settings.ScreenshotsDir, name+".png")
	if err := b.page.Screenshot(path, true); err != nil {
		return "", fmt.Errorf("failed to take screenshot %s: %w", name, err)
	}
	b.reporter.Attach(name, path, "image/png")
	return path, nil
}

// GetPageTitle returns the document title.
func (b *Base) GetPageTitle() (string, error) {
	return b.page.Title()
}

// GetCurrentURL returns the tab's URL.
func (b *Base) GetCurrentURL() string {
	return b.page.URL()
}

// RefreshPage reloads the page and waits for it to settle.
func (b *Base) RefreshPage() error {
	return b.step("Refresh page", func() error {
		if err := b.page.Reload(b.effective(0)); err != nil {
			return fmt.Errorf("failed to reload: %w", err)
		}
		return b.WaitForPageLoad(0)
	})
}

// GoBack navigates back in history and waits for the page to settle.
func (b *Base) GoBack() error {
	return b.step("Navigate back", func() error {
		if err := b.page.GoBack(b.effective(0)); err != nil {
			return fmt.Errorf("failed to go back: %w", err)
		}
		return b.WaitForPageLoad(0)
	})
}

// AcceptAlert makes the page accept every later native dialog. The handler
// stays registered for the page's lifetime and is installed once.
func (b *Base) AcceptAlert() {
	_ = b.step("Accept alert", func() error {
		if b.alertHandled {
			return nil
		}
		b.page.OnDialog(func(d browser.Dialog) {
			if err := d.Accept(); err != nil {
				b.log.WithError(err).WithField("dialog", d.Type()).Warn("failed to accept dialog")
			}
		})
		b.alertHandled = true
		return nil
	})
}

// readAll returns the text of every element matched by selector. Unreadable
// elements yield "".
func (b *Base) readAll(selector string) []string {
	return readTexts(b.page.Locator(selector))
}

func readTexts(loc browser.Locator) []string {
	items, err := loc.All()
	if err != nil {
		return nil
	}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		text, err := item.TextContent()
		if err != nil {
			text = ""
		}
		texts = append(texts, text)
	}
	return texts
}

// count returns how many elements selector matches, 0 on error.
func (b *Base) count(selector string) int {
	items, err := b.page.Locator(selector).All()
	if err != nil {
		return 0
	}
	return len(items)
}

// badgeCount reads a numeric badge. Absent or non-numeric badges count as 0.
func (b *Base) badgeCount(selector string) int {
	if !b.IsElementVisible(selector, 0) {
		return 0
	}
	text, err := b.GetText(selector, 0)
	if err != nil {
		return 0
	}
	return atoiOrZero(text)
}

func atoiOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
