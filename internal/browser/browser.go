// Package browser defines the browser-page capabilities the page objects rely
// on and implements them on top of Playwright.
package browser

import "errors"

// ErrTimeout reports that an element or page never reached the requested
// state before the deadline.
var ErrTimeout = errors.New("timeout exceeded")

// LoadState is a page lifecycle milestone.
type LoadState string

// Load states
const (
	LoadStateLoad             LoadState = "load"
	LoadStateDOMContentLoaded LoadState = "domcontentloaded"
	LoadStateNetworkIdle      LoadState = "networkidle"
)

// ElementState is the state a locator can be waited for.
type ElementState string

// Element states
const (
	StateVisible  ElementState = "visible"
	StateHidden   ElementState = "hidden"
	StateAttached ElementState = "attached"
	StateDetached ElementState = "detached"
)

// Page is a single browser tab. Timeouts are in milliseconds; a value <= 0
// selects the context's default timeout.
type Page interface {
	// Goto navigates to url.
	Goto(url string, timeout float64) error

	// WaitForLoadState blocks until the page reaches state.
	WaitForLoadState(state LoadState, timeout float64) error

	// Locator returns a lazy handle on the elements matching selector.
	Locator(selector string) Locator

	// Title returns the document title.
	Title() (string, error)

	// URL returns the current page URL.
	URL() string

	// Reload reloads the current document.
	Reload(timeout float64) error

	// GoBack navigates one step back in history.
	GoBack(timeout float64) error

	// Screenshot writes a PNG capture of the page to path.
	Screenshot(path string, fullPage bool) error

	// OnDialog registers handler for native alert, confirm and prompt dialogs.
	OnDialog(handler func(Dialog))

	// Close closes the tab.
	Close() error
}

// Locator addresses zero or more elements. Resolution happens on every call,
// so a Locator always reflects the live DOM.
type Locator interface {
	WaitFor(state ElementState, timeout float64) error
	Click() error
	Clear() error
	Fill(value string) error
	SelectOption(value string) error
	Hover() error
	ScrollIntoViewIfNeeded() error
	TextContent() (string, error)
	// ContainsText retries until the element's text contains text or the
	// timeout in milliseconds expires.
	ContainsText(text string, timeout float64) error
	IsVisible() (bool, error)
	Count() (int, error)
	All() ([]Locator, error)
	Locator(selector string) Locator
	Filter(hasText string) Locator
	First() Locator
}

// Dialog is a native browser dialog.
type Dialog interface {
	Type() string
	Message() string
	Accept() error
	Dismiss() error
}
