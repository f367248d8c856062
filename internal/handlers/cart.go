package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/catalog"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

// CartHandler renders the cart page
type CartHandler struct {
	template *template.Template
	auth     services.AuthService
	carts    services.CartService
	log      logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(auth services.AuthService, carts services.CartService, log logrus.FieldLogger) (*CartHandler, error) {
	tmpl, err := parsePage("cart.html")
	if err != nil {
		return nil, err
	}

	return &CartHandler{
		template: tmpl,
		auth:     auth,
		carts:    carts,
		log:      log,
	}, nil
}

// ServeHTTP handles GET /cart.html
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := requireSession(w, r, h.auth)
	if !ok {
		return
	}

	view, err := h.carts.View(id)
	if err != nil {
		h.log.WithError(err).Error("failed to load cart")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := pageData{Title: "Your Cart", Count: view.Count, Cart: view}
	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("failed to render cart page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// CartAction selects what a CartActionHandler does
type CartAction string

// Cart actions
const (
	CartActionAdd    CartAction = "add"
	CartActionRemove CartAction = "remove"
)

// CartActionHandler adds or removes one product and redirects back
type CartActionHandler struct {
	action CartAction
	auth   services.AuthService
	carts  services.CartService
	log    logrus.FieldLogger
}

// NewCartActionHandler creates a handler for POST /cart/add or /cart/remove
func NewCartActionHandler(action CartAction, auth services.AuthService, carts services.CartService, log logrus.FieldLogger) *CartActionHandler {
	return &CartActionHandler{
		action: action,
		auth:   auth,
		carts:  carts,
		log:    log,
	}
}

// ServeHTTP handles the form post. Adding a product already in the cart or
// removing one that is not there is a no-op.
func (h *CartActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := requireSession(w, r, h.auth)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	testID := r.PostForm.Get("id")

	var err error
	switch h.action {
	case CartActionAdd:
		err = h.carts.AddProduct(id, testID)
	case CartActionRemove:
		err = h.carts.RemoveProduct(id, testID)
	}

	switch {
	case err == nil, errors.Is(err, models.ErrAlreadyInCart), errors.Is(err, models.ErrNotInCart):
	case errors.Is(err, catalog.ErrProductNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	default:
		h.log.WithError(err).WithField("action", h.action).Error("cart update failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.log.WithFields(logrus.Fields{"action": h.action, "product": testID}).Debug("cart updated")
	http.Redirect(w, r, safeReturn(r.PostForm.Get("return"), "/inventory.html"), http.StatusSeeOther)
}
