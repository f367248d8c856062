package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/catalog"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/handlers"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

// BuildStorefront wires the embedded catalog, the default user accounts and an
// in-memory cart store into the storefront handlers.
func BuildStorefront(cfg config.ServerConfig, log logrus.FieldLogger) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: cfg, Log: log}
	log = deps.logger()

	cat, err := catalog.Default()
	if err != nil {
		return deps, fmt.Errorf("failed to load catalog: %w", err)
	}

	auth := services.NewDefaultAuthService()
	carts := services.NewCartService(services.NewMemoryCartStore(), cat)

	if deps.LoginHandler, err = handlers.NewLoginHandler(auth, services.DefaultPassword, log); err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	if deps.InventoryHandler, err = handlers.NewInventoryHandler(cat, auth, carts, log); err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	if deps.CartHandler, err = handlers.NewCartHandler(auth, carts, log); err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	if deps.CheckoutHandler, err = handlers.NewCheckoutHandler(auth, carts, log); err != nil {
		return deps, fmt.Errorf("failed to create checkout handler: %w", err)
	}
	deps.CartAddHandler = handlers.NewCartActionHandler(handlers.CartActionAdd, auth, carts, log)
	deps.CartRemoveHandler = handlers.NewCartActionHandler(handlers.CartActionRemove, auth, carts, log)
	deps.LogoutHandler = handlers.NewLogoutHandler(auth, carts, log)

	log.WithField("products", cat.Len()).Debug("storefront built")
	return deps, nil
}
