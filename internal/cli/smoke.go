package cli

import (
	"errors"
	"fmt"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/pages"
)

// ErrSmokeFailed marks a smoke check whose page state did not match the
// user category's expected outcome.
var ErrSmokeFailed = errors.New("smoke check failed")

// SmokeResult describes one smoke login
type SmokeResult struct {
	Category   config.Category
	Username   string
	LoggedIn   bool
	Error      string
	Screenshot string
}

// RunSmoke logs in as the configured account of category and checks the
// outcome: the locked account must see the error banner, every other account
// must land on a loaded inventory. A screenshot of the final page is taken in
// both cases.
func RunSmoke(page browser.Page, settings *config.Settings, category config.Category, opts ...pages.Option) (*SmokeResult, error) {
	res := &SmokeResult{
		Category: category,
		Username: settings.Credentials(category).Username,
	}

	login := pages.NewLoginPage(page, settings, opts...)
	if err := login.Navigate(); err != nil {
		return res, err
	}
	if !login.IsLoaded() {
		return res, fmt.Errorf("%w: login page did not load", ErrSmokeFailed)
	}
	if err := login.LoginAs(category); err != nil {
		return res, err
	}

	inventory := pages.NewInventoryPage(page, settings, opts...)
	res.LoggedIn = inventory.IsLoaded()
	if !res.LoggedIn {
		res.Error = login.GetErrorMessage()
	}

	shot, err := login.TakeScreenshot("smoke_" + string(category))
	if err != nil {
		return res, err
	}
	res.Screenshot = shot

	switch {
	case category == config.CategoryLocked && res.LoggedIn:
		return res, fmt.Errorf("%w: locked user %s reached the inventory", ErrSmokeFailed, res.Username)
	case category == config.CategoryLocked && res.Error == "":
		return res, fmt.Errorf("%w: no error banner for locked user %s", ErrSmokeFailed, res.Username)
	case category != config.CategoryLocked && !res.LoggedIn:
		return res, fmt.Errorf("%w: inventory not loaded for %s: %s", ErrSmokeFailed, res.Username, res.Error)
	}
	return res, nil
}
