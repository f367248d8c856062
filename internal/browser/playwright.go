package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

type playwrightPage struct {
	page playwright.Page
}

// Wrap adapts a Playwright page to Page.
func Wrap(page playwright.Page) Page {
	return &playwrightPage{page: page}
}

// translate marks Playwright timeouts with ErrTimeout while keeping the
// original error in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// expectation marks a failed web-first assertion as a timeout. Playwright
// only reports a mismatch once the assertion timeout has elapsed.
func expectation(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return translate(err)
	}
	return fmt.Errorf("%w: %w", ErrTimeout, err)
}

func timeoutOpt(ms float64) *float64 {
	if ms <= 0 {
		return nil
	}
	return playwright.Float(ms)
}

func loadState(state LoadState) *playwright.LoadState {
	switch state {
	case LoadStateLoad:
		return playwright.LoadStateLoad
	case LoadStateDOMContentLoaded:
		return playwright.LoadStateDomcontentloaded
	default:
		return playwright.LoadStateNetworkidle
	}
}

func selectorState(state ElementState) *playwright.WaitForSelectorState {
	switch state {
	case StateHidden:
		return playwright.WaitForSelectorStateHidden
	case StateAttached:
		return playwright.WaitForSelectorStateAttached
	case StateDetached:
		return playwright.WaitForSelectorStateDetached
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

func (p *playwrightPage) Goto(url string, timeout float64) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout: timeoutOpt(timeout),
	})
	return translate(err)
}

func (p *playwrightPage) WaitForLoadState(state LoadState, timeout float64) error {
	return translate(p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState(state),
		Timeout: timeoutOpt(timeout),
	}))
}

func (p *playwrightPage) Locator(selector string) Locator {
	return &playwrightLocator{locator: p.page.Locator(selector)}
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Reload(timeout float64) error {
	_, err := p.page.Reload(playwright.PageReloadOptions{
		Timeout: timeoutOpt(timeout),
	})
	return translate(err)
}

func (p *playwrightPage) GoBack(timeout float64) error {
	_, err := p.page.GoBack(playwright.PageGoBackOptions{
		Timeout: timeoutOpt(timeout),
	})
	return translate(err)
}

func (p *playwrightPage) Screenshot(path string, fullPage bool) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
	})
	return translate(err)
}

func (p *playwrightPage) OnDialog(handler func(Dialog)) {
	p.page.OnDialog(func(d playwright.Dialog) {
		handler(&playwrightDialog{dialog: d})
	})
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

type playwrightLocator struct {
	locator playwright.Locator
}

func (l *playwrightLocator) WaitFor(state ElementState, timeout float64) error {
	return translate(l.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   selectorState(state),
		Timeout: timeoutOpt(timeout),
	}))
}

func (l *playwrightLocator) Click() error {
	return translate(l.locator.Click())
}

func (l *playwrightLocator) Clear() error {
	return translate(l.locator.Clear())
}

func (l *playwrightLocator) Fill(value string) error {
	return translate(l.locator.Fill(value))
}

func (l *playwrightLocator) SelectOption(value string) error {
	_, err := l.locator.SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	})
	return translate(err)
}

func (l *playwrightLocator) Hover() error {
	return translate(l.locator.Hover())
}

func (l *playwrightLocator) ScrollIntoViewIfNeeded() error {
	return translate(l.locator.ScrollIntoViewIfNeeded())
}

func (l *playwrightLocator) TextContent() (string, error) {
	text, err := l.locator.TextContent()
	return text, translate(err)
}

func (l *playwrightLocator) ContainsText(text string, timeout float64) error {
	// Narrowing to the first match keeps the assertion out of strict mode
	// when selector matches a list.
	match := l.locator.Filter(playwright.LocatorFilterOptions{HasText: text}).First()
	return expectation(playwright.NewPlaywrightAssertions().Locator(match).ToContainText(text,
		playwright.LocatorAssertionsToContainTextOptions{Timeout: timeoutOpt(timeout)}))
}

func (l *playwrightLocator) IsVisible() (bool, error) {
	return l.locator.IsVisible()
}

func (l *playwrightLocator) Count() (int, error) {
	return l.locator.Count()
}

func (l *playwrightLocator) All() ([]Locator, error) {
	all, err := l.locator.All()
	if err != nil {
		return nil, translate(err)
	}
	out := make([]Locator, len(all))
	for i, loc := range all {
		out[i] = &playwrightLocator{locator: loc}
	}
	return out, nil
}

func (l *playwrightLocator) Locator(selector string) Locator {
	return &playwrightLocator{locator: l.locator.Locator(selector)}
}

func (l *playwrightLocator) Filter(hasText string) Locator {
	return &playwrightLocator{locator: l.locator.Filter(playwright.LocatorFilterOptions{
		HasText: hasText,
	})}
}

func (l *playwrightLocator) First() Locator {
	return &playwrightLocator{locator: l.locator.First()}
}

type playwrightDialog struct {
	dialog playwright.Dialog
}

func (d *playwrightDialog) Type() string    { return d.dialog.Type() }
func (d *playwrightDialog) Message() string { return d.dialog.Message() }
func (d *playwrightDialog) Accept() error   { return d.dialog.Accept() }
func (d *playwrightDialog) Dismiss() error  { return d.dialog.Dismiss() }
