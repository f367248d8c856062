package handlers

import (
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/catalog"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

// InventoryHandler renders the product listing
type InventoryHandler struct {
	template *template.Template
	catalog  *catalog.Catalog
	auth     services.AuthService
	carts    services.CartService
	log      logrus.FieldLogger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(cat *catalog.Catalog, auth services.AuthService, carts services.CartService, log logrus.FieldLogger) (*InventoryHandler, error) {
	tmpl, err := parsePage("inventory.html")
	if err != nil {
		return nil, err
	}

	return &InventoryHandler{
		template: tmpl,
		catalog:  cat,
		auth:     auth,
		carts:    carts,
		log:      log,
	}, nil
}

// ServeHTTP handles GET /inventory.html
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	data := pageData{
		Title:    "Products",
		Count:    view.Count,
		Sortable: true,
		Products: h.catalog.All(),
		Cart:     view,
	}
	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("failed to render inventory page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
