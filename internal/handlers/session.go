package handlers

import (
	"net/http"
	"strings"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

// SessionCookie carries the storefront session id
const SessionCookie = "session-id"

// sessionID returns the caller's session id when it maps to a user
func sessionID(r *http.Request, auth services.AuthService) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	if _, err := auth.Username(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// requireSession redirects anonymous callers to the login page. The login
// page explains which path was refused.
func requireSession(w http.ResponseWriter, r *http.Request, auth services.AuthService) (string, bool) {
	id, ok := sessionID(r, auth)
	if !ok {
		http.Redirect(w, r, "/?from="+strings.TrimPrefix(r.URL.Path, "/"), http.StatusSeeOther)
		return "", false
	}
	return id, true
}

// safeReturn accepts only local absolute paths
func safeReturn(path, fallback string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, "\\") {
		return fallback
	}
	return path
}
