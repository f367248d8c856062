package pages

import (
	"strings"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
)

// Login page selectors
const (
	LoginUsernameInput = `[data-test="username"]`
	LoginPasswordInput = `[data-test="password"]`
	LoginButton        = `[data-test="login-button"]`
	LoginErrorMessage  = `.error-message-container`
	LoginErrorButton   = `.error-button`
	LoginLogo          = `.login_logo`
	LoginContainer     = `[data-test="login-container"]`
	LoginCredentials   = `[data-test="login-credentials"]`
)

// LoginPage is the storefront's sign-in screen.
type LoginPage struct {
	Base
	URL string
}

// NewLoginPage returns the login page object for page.
func NewLoginPage(page browser.Page, settings *config.Settings, opts ...Option) *LoginPage {
	return &LoginPage{
		Base: NewBase(page, settings, opts...),
		URL:  settings.BaseURL + "/",
	}
}

// IsLoaded reports whether the logo, both inputs and the button are visible.
func (p *LoginPage) IsLoaded() bool {
	return p.IsElementVisible(LoginLogo, 0) &&
		p.IsElementVisible(LoginUsernameInput, 0) &&
		p.IsElementVisible(LoginPasswordInput, 0) &&
		p.IsElementVisible(LoginButton, 0)
}

// Navigate opens the login page at the configured base URL.
func (p *LoginPage) Navigate() error {
	return p.step("Navigate to login page", func() error {
		return p.NavigateTo(p.URL)
	})
}

// EnterUsername replaces the username input with username.
func (p *LoginPage) EnterUsername(username string) error {
	return p.step("Enter username: "+username, func() error {
		return p.fill(LoginUsernameInput, username, 0)
	})
}

// EnterPassword types password without echoing it into the step name.
func (p *LoginPage) EnterPassword(password string) error {
	return p.step("Enter password", func() error {
		return p.fill(LoginPasswordInput, password, 0)
	})
}

// ClickLogin submits the form.
func (p *LoginPage) ClickLogin() error {
	return p.step("Click login button", func() error {
		return p.ClickElement(LoginButton, 0)
	})
}

// Login fills both inputs and submits.
func (p *LoginPage) Login(username, password string) error {
	return p.step("Login with credentials: "+username, func() error {
		if err := p.EnterUsername(username); err != nil {
			return err
		}
		if err := p.EnterPassword(password); err != nil {
			return err
		}
		return p.ClickLogin()
	})
}

// LoginAs logs in with the configured account of category.
func (p *LoginPage) LoginAs(category config.Category) error {
	creds := p.settings.Credentials(category)
	return p.step("Login with "+string(category)+" user", func() error {
		return p.Login(creds.Username, creds.Password)
	})
}

// LoginStandardUser logs in with the standard account.
func (p *LoginPage) LoginStandardUser() error {
	return p.LoginAs(config.CategoryStandard)
}

// LoginLockedUser logs in with the locked-out account.
func (p *LoginPage) LoginLockedUser() error {
	return p.LoginAs(config.CategoryLocked)
}

// LoginProblemUser logs in with the problem account.
func (p *LoginPage) LoginProblemUser() error {
	return p.LoginAs(config.CategoryProblem)
}

// LoginPerformanceUser logs in with the performance glitch account.
func (p *LoginPage) LoginPerformanceUser() error {
	return p.LoginAs(config.CategoryPerformance)
}

// GetErrorMessage returns the error banner text, or "" when no banner shows.
func (p *LoginPage) GetErrorMessage() string {
	if !p.IsElementVisible(LoginErrorMessage, 0) {
		return ""
	}
	text, err := p.GetText(LoginErrorMessage, 0)
	if err != nil {
		return ""
	}
	return text
}

// IsErrorMessageDisplayed reports whether the error banner is visible.
func (p *LoginPage) IsErrorMessageDisplayed() bool {
	return p.IsElementVisible(LoginErrorMessage, 0)
}

// ClearErrorMessage dismisses the error banner if one is shown.
func (p *LoginPage) ClearErrorMessage() error {
	return p.step("Clear error message", func() error {
		if !p.IsElementVisible(LoginErrorButton, 0) {
			return nil
		}
		return p.ClickElement(LoginErrorButton, 0)
	})
}

// GetLoginLogoText returns the text of the page logo.
func (p *LoginPage) GetLoginLogoText() (string, error) {
	return p.GetText(LoginLogo, 0)
}

// IsLoginCredentialsVisible reports whether the accepted usernames hint shows.
func (p *LoginPage) IsLoginCredentialsVisible() bool {
	return p.IsElementVisible(LoginCredentials, 0)
}

// GetAvailableUsernames scrapes the accepted usernames hint. It is best
// effort: every whitespace-separated word containing "_user" counts.
func (p *LoginPage) GetAvailableUsernames() []string {
	if !p.IsLoginCredentialsVisible() {
		return nil
	}
	text, err := p.GetText(LoginCredentials, 0)
	if err != nil {
		return nil
	}
	return ParseUsernames(text)
}

// ParseUsernames extracts username-looking words from the credentials hint.
func ParseUsernames(text string) []string {
	var usernames []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "_user") {
			continue
		}
		for _, word := range strings.Fields(line) {
			if strings.Contains(word, "_user") {
				usernames = append(usernames, word)
			}
		}
	}
	return usernames
}

// WaitForLoginPageLoad waits for the logo, both inputs and the button.
func (p *LoginPage) WaitForLoginPageLoad(timeout int) error {
	for _, sel := range []string{LoginLogo, LoginUsernameInput, LoginPasswordInput, LoginButton} {
		if _, err := p.WaitForElement(sel, timeout); err != nil {
			return err
		}
	}
	return nil
}
