// Package browsertest provides an in-memory browser.Page for unit tests of
// page objects. Elements are registered per selector; waits resolve
// immediately against the registered state and fail with browser.ErrTimeout.
package browsertest

import (
	"fmt"
	"os"
	"strings"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser"
)

// Element is a fake DOM node.
type Element struct {
	Text     string
	Hidden   bool
	Value    string
	Children map[string][]*Element

	// OnClick runs when the element is clicked.
	OnClick func()
	// ClickErr is returned by Click instead of running OnClick.
	ClickErr error
}

// NewElement returns a visible element with text.
func NewElement(text string) *Element {
	return &Element{Text: text}
}

// Add registers children under selector.
func (e *Element) Add(selector string, children ...*Element) *Element {
	if e.Children == nil {
		e.Children = make(map[string][]*Element)
	}
	e.Children[selector] = append(e.Children[selector], children...)
	return e
}

// Wait records one wait performed through a locator.
type Wait struct {
	Selector string
	State    browser.ElementState
	Timeout  float64
	// Text is the expected substring for text waits.
	Text string
}

// Page is a fake browser.Page.
type Page struct {
	Elements map[string][]*Element

	CurrentURL   string
	PageTitle    string
	GotoErr      error
	LoadStateErr error
	TitleErr     error

	// OnGoto runs after a successful navigation.
	OnGoto func(url string)
	// OnSelect runs after SelectOption on any element.
	OnSelect func(selector, value string)

	// Actions is an ordered log such as "click <selector>" or "goto <url>".
	Actions []string
	// Waits logs every locator wait with its effective timeout.
	Waits []Wait
	// LoadStates logs every WaitForLoadState call.
	LoadStates []browser.LoadState

	dialogHandlers []func(browser.Dialog)
	history        []string
}

// NewPage returns an empty fake page.
func NewPage() *Page {
	return &Page{Elements: make(map[string][]*Element)}
}

// Add registers elements under selector.
func (p *Page) Add(selector string, els ...*Element) {
	p.Elements[selector] = append(p.Elements[selector], els...)
}

// Remove unregisters every element under selector.
func (p *Page) Remove(selector string) {
	delete(p.Elements, selector)
}

// DialogHandlers returns the number of registered dialog handlers.
func (p *Page) DialogHandlers() int {
	return len(p.dialogHandlers)
}

// TriggerDialog dispatches a dialog to the registered handlers and returns it.
func (p *Page) TriggerDialog(kind, message string) *Dialog {
	d := &Dialog{kind: kind, message: message}
	for _, h := range p.dialogHandlers {
		h(d)
	}
	return d
}

func (p *Page) record(format string, args ...any) {
	p.Actions = append(p.Actions, fmt.Sprintf(format, args...))
}

func (p *Page) Goto(url string, timeout float64) error {
	if p.GotoErr != nil {
		return p.GotoErr
	}
	if p.CurrentURL != "" {
		p.history = append(p.history, p.CurrentURL)
	}
	p.CurrentURL = url
	p.record("goto %s", url)
	if p.OnGoto != nil {
		p.OnGoto(url)
	}
	return nil
}

func (p *Page) WaitForLoadState(state browser.LoadState, timeout float64) error {
	p.LoadStates = append(p.LoadStates, state)
	return p.LoadStateErr
}

func (p *Page) Locator(selector string) browser.Locator {
	return &Locator{page: p, selector: selector}
}

func (p *Page) Title() (string, error) {
	return p.PageTitle, p.TitleErr
}

func (p *Page) URL() string {
	return p.CurrentURL
}

func (p *Page) Reload(timeout float64) error {
	p.record("reload")
	return nil
}

func (p *Page) GoBack(timeout float64) error {
	p.record("back")
	if n := len(p.history); n > 0 {
		p.CurrentURL = p.history[n-1]
		p.history = p.history[:n-1]
	}
	return nil
}

// Screenshot writes placeholder bytes to path so attachments can be copied.
func (p *Page) Screenshot(path string, fullPage bool) error {
	p.record("screenshot %s fullPage=%t", path, fullPage)
	return os.WriteFile(path, []byte("\x89PNG fake"), 0644)
}

func (p *Page) OnDialog(handler func(browser.Dialog)) {
	p.dialogHandlers = append(p.dialogHandlers, handler)
}

func (p *Page) Close() error {
	p.record("close")
	return nil
}

// Locator is a lazily resolved fake locator.
type Locator struct {
	page     *Page
	parent   *Locator
	selector string
	hasText  string
	first    bool
	fixed    *Element
}

func (l *Locator) describe() string {
	switch {
	case l.fixed != nil:
		return l.parentDescribe() + "[item]"
	case l.first:
		return l.parentDescribe() + ">>first"
	case l.hasText != "":
		return fmt.Sprintf("%s>>has-text=%q", l.parentDescribe(), l.hasText)
	case l.parent != nil:
		return l.parent.describe() + " " + l.selector
	default:
		return l.selector
	}
}

func (l *Locator) parentDescribe() string {
	if l.parent == nil {
		return ""
	}
	return l.parent.describe()
}

func (l *Locator) resolve() []*Element {
	if l.fixed != nil {
		return []*Element{l.fixed}
	}
	if l.parent == nil {
		return l.page.Elements[l.selector]
	}

	base := l.parent.resolve()
	switch {
	case l.first:
		if len(base) == 0 {
			return nil
		}
		return base[:1]
	case l.hasText != "":
		var out []*Element
		for _, el := range base {
			if strings.Contains(el.Text, l.hasText) {
				out = append(out, el)
			}
		}
		return out
	default:
		var out []*Element
		for _, el := range base {
			out = append(out, el.Children[l.selector]...)
		}
		return out
	}
}

// one returns the first visible match, or the first match when none is
// visible, or a timeout error.
func (l *Locator) one() (*Element, error) {
	els := l.resolve()
	if len(els) == 0 {
		return nil, fmt.Errorf("waiting for %s: %w", l.describe(), browser.ErrTimeout)
	}
	for _, el := range els {
		if !el.Hidden {
			return el, nil
		}
	}
	return els[0], nil
}

func (l *Locator) WaitFor(state browser.ElementState, timeout float64) error {
	l.page.Waits = append(l.page.Waits, Wait{Selector: l.describe(), State: state, Timeout: timeout})

	els := l.resolve()
	visible := false
	for _, el := range els {
		if !el.Hidden {
			visible = true
			break
		}
	}

	ok := false
	switch state {
	case browser.StateVisible:
		ok = visible
	case browser.StateHidden:
		ok = !visible
	case browser.StateAttached:
		ok = len(els) > 0
	case browser.StateDetached:
		ok = len(els) == 0
	}
	if !ok {
		return fmt.Errorf("waiting for %s to be %s: %w", l.describe(), state, browser.ErrTimeout)
	}
	return nil
}

func (l *Locator) Click() error {
	el, err := l.one()
	if err != nil {
		return err
	}
	if el.ClickErr != nil {
		return el.ClickErr
	}
	l.page.record("click %s", l.describe())
	if el.OnClick != nil {
		el.OnClick()
	}
	return nil
}

func (l *Locator) Clear() error {
	el, err := l.one()
	if err != nil {
		return err
	}
	el.Value = ""
	l.page.record("clear %s", l.describe())
	return nil
}

func (l *Locator) Fill(value string) error {
	el, err := l.one()
	if err != nil {
		return err
	}
	el.Value = value
	l.page.record("fill %s %s", l.describe(), value)
	return nil
}

func (l *Locator) SelectOption(value string) error {
	el, err := l.one()
	if err != nil {
		return err
	}
	el.Value = value
	l.page.record("select %s %s", l.describe(), value)
	if l.page.OnSelect != nil {
		l.page.OnSelect(l.describe(), value)
	}
	return nil
}

func (l *Locator) Hover() error {
	if _, err := l.one(); err != nil {
		return err
	}
	l.page.record("hover %s", l.describe())
	return nil
}

func (l *Locator) ScrollIntoViewIfNeeded() error {
	if _, err := l.one(); err != nil {
		return err
	}
	l.page.record("scroll %s", l.describe())
	return nil
}

func (l *Locator) TextContent() (string, error) {
	el, err := l.one()
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

// ContainsText succeeds when any match contains text. The error carries the
// texts seen so callers can report them.
func (l *Locator) ContainsText(text string, timeout float64) error {
	l.page.Waits = append(l.page.Waits, Wait{Selector: l.describe(), State: browser.StateVisible, Timeout: timeout, Text: text})

	els := l.resolve()
	seen := make([]string, 0, len(els))
	for _, el := range els {
		if strings.Contains(el.Text, text) {
			return nil
		}
		seen = append(seen, el.Text)
	}
	return fmt.Errorf("waiting for %s to contain %q (actual %q): %w", l.describe(), text, seen, browser.ErrTimeout)
}

func (l *Locator) IsVisible() (bool, error) {
	for _, el := range l.resolve() {
		if !el.Hidden {
			return true, nil
		}
	}
	return false, nil
}

func (l *Locator) Count() (int, error) {
	return len(l.resolve()), nil
}

func (l *Locator) All() ([]browser.Locator, error) {
	els := l.resolve()
	out := make([]browser.Locator, len(els))
	for i, el := range els {
		out[i] = &Locator{page: l.page, parent: l, fixed: el}
	}
	return out, nil
}

func (l *Locator) Locator(selector string) browser.Locator {
	return &Locator{page: l.page, parent: l, selector: selector}
}

func (l *Locator) Filter(hasText string) browser.Locator {
	return &Locator{page: l.page, parent: l, hasText: hasText}
}

func (l *Locator) First() browser.Locator {
	return &Locator{page: l.page, parent: l, first: true}
}

// Dialog is a fake native dialog.
type Dialog struct {
	kind      string
	message   string
	Accepted  bool
	Dismissed bool
}

func (d *Dialog) Type() string    { return d.kind }
func (d *Dialog) Message() string { return d.message }

func (d *Dialog) Accept() error {
	d.Accepted = true
	return nil
}

func (d *Dialog) Dismiss() error {
	d.Dismissed = true
	return nil
}

var (
	_ browser.Page    = (*Page)(nil)
	_ browser.Locator = (*Locator)(nil)
	_ browser.Dialog  = (*Dialog)(nil)
)
