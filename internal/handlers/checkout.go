package handlers

import (
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

// CheckoutHandler renders the first checkout step
type CheckoutHandler struct {
	template *template.Template
	auth     services.AuthService
	carts    services.CartService
	log      logrus.FieldLogger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(auth services.AuthService, carts services.CartService, log logrus.FieldLogger) (*CheckoutHandler, error) {
	tmpl, err := parsePage("checkout.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutHandler{
		template: tmpl,
		auth:     auth,
		carts:    carts,
		log:      log,
	}, nil
}

// ServeHTTP handles GET /checkout-step-one.html
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	data := pageData{Title: "Checkout: Your Information", Count: view.Count, Cart: view}
	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("failed to render checkout page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
