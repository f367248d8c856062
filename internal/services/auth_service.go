package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Login errors, worded as the storefront shows them
var (
	ErrUsernameRequired   = errors.New("Epic sadface: Username is required")
	ErrPasswordRequired   = errors.New("Epic sadface: Password is required")
	ErrInvalidCredentials = errors.New("Epic sadface: Username and password do not match any user in this service")
	ErrLockedOut          = errors.New("Epic sadface: Sorry, this user has been locked out.")
	ErrSessionNotFound    = errors.New("session not found")
)

// DefaultPassword is shared by every storefront account
const DefaultPassword = "secret_sauce"

// DefaultUsers lists the storefront accounts in the order the login hint
// shows them
var DefaultUsers = []string{
	"standard_user",
	"locked_out_user",
	"problem_user",
	"performance_glitch_user",
	"error_user",
	"visual_user",
}

// AuthService authenticates storefront users and tracks their sessions
type AuthService interface {
	Login(username, password string) (sessionID string, err error)
	Username(sessionID string) (string, error)
	Logout(sessionID string)
	Usernames() []string
}

// AuthServiceImpl implements AuthService in memory
type AuthServiceImpl struct {
	users    []string
	password string
	locked   map[string]bool

	mu       sync.RWMutex
	sessions map[string]string
}

// NewAuthService creates an auth service accepting users with password.
// Users listed in locked are known but refused.
func NewAuthService(users []string, password string, locked ...string) *AuthServiceImpl {
	s := &AuthServiceImpl{
		users:    append([]string(nil), users...),
		password: password,
		locked:   make(map[string]bool, len(locked)),
		sessions: make(map[string]string),
	}
	for _, u := range locked {
		s.locked[u] = true
	}
	return s
}

// NewDefaultAuthService accepts DefaultUsers with DefaultPassword and locks
// out locked_out_user
func NewDefaultAuthService() *AuthServiceImpl {
	return NewAuthService(DefaultUsers, DefaultPassword, "locked_out_user")
}

// Login validates the credentials and opens a session
func (s *AuthServiceImpl) Login(username, password string) (string, error) {
	if username == "" {
		return "", ErrUsernameRequired
	}
	if password == "" {
		return "", ErrPasswordRequired
	}
	if !s.known(username) || password != s.password {
		return "", ErrInvalidCredentials
	}
	if s.locked[username] {
		return "", ErrLockedOut
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = username
	s.mu.Unlock()
	return id, nil
}

func (s *AuthServiceImpl) known(username string) bool {
	for _, u := range s.users {
		if u == username {
			return true
		}
	}
	return false
}

// Username resolves a session to its user
func (s *AuthServiceImpl) Username(sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	return u, nil
}

// Logout ends a session; unknown sessions are ignored
func (s *AuthServiceImpl) Logout(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Usernames returns the accepted usernames
func (s *AuthServiceImpl) Usernames() []string {
	return append([]string(nil), s.users...)
}
