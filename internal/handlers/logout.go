package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

// LogoutHandler ends the session and drops its cart
type LogoutHandler struct {
	auth  services.AuthService
	carts services.CartService
	log   logrus.FieldLogger
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(auth services.AuthService, carts services.CartService, log logrus.FieldLogger) *LogoutHandler {
	return &LogoutHandler{auth: auth, carts: carts, log: log}
}

// ServeHTTP handles POST /logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if id, ok := sessionID(r, h.auth); ok {
		if err := h.carts.Clear(id); err != nil {
			h.log.WithError(err).Warn("failed to clear cart on logout")
		}
		h.auth.Logout(id)
	}

	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
