package services

import (
	"sync"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
)

// MemoryCartStore keeps carts in process memory. Carts are copied on the way
// in and out so callers never share state with the store.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

// NewMemoryCartStore creates an empty store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*models.Cart)}
}

// GetCart returns a copy of the cart for sessionID.
func (s *MemoryCartStore) GetCart(sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart.Clone(), nil
}

// SaveCart stores a copy of cart under its session.
func (s *MemoryCartStore) SaveCart(cart *models.Cart) error {
	if cart.SessionID == "" {
		return models.ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.SessionID] = cart.Clone()
	return nil
}

// DeleteCart removes the cart for sessionID.
func (s *MemoryCartStore) DeleteCart(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[sessionID]; !ok {
		return ErrCartNotFound
	}
	delete(s.carts, sessionID)
	return nil
}
