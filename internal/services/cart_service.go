package services

import (
	"errors"
	"fmt"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/catalog"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
)

// CartStore defines the interface for cart persistence
type CartStore interface {
	GetCart(sessionID string) (*models.Cart, error)
	SaveCart(cart *models.Cart) error
	DeleteCart(sessionID string) error
}

// ErrCartNotFound is returned by a CartStore for unknown sessions
var ErrCartNotFound = errors.New("cart not found")

// CartLine is a cart line joined with its product
type CartLine struct {
	Product  models.Product
	Quantity int
}

// Subtotal returns price times quantity in cents
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// CartView is a cart ready for rendering
type CartView struct {
	Lines []CartLine
	Count int
	Total int64
}

// InCart reports whether the product with testID is in the cart
func (v CartView) InCart(testID string) bool {
	for _, l := range v.Lines {
		if l.Product.TestID() == testID {
			return true
		}
	}
	return false
}

// CartService handles cart business logic
type CartService interface {
	AddProduct(sessionID, testID string) error
	RemoveProduct(sessionID, testID string) error
	View(sessionID string) (*CartView, error)
	Clear(sessionID string) error
}

// CartServiceImpl implements CartService
type CartServiceImpl struct {
	store   CartStore
	catalog *catalog.Catalog
}

// NewCartService creates a new cart service
func NewCartService(store CartStore, cat *catalog.Catalog) CartService {
	return &CartServiceImpl{
		store:   store,
		catalog: cat,
	}
}

func (s *CartServiceImpl) load(sessionID string) (*models.Cart, error) {
	cart, err := s.store.GetCart(sessionID)
	if errors.Is(err, ErrCartNotFound) {
		return models.NewCart(sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddProduct puts the product identified by testID into the session's cart
func (s *CartServiceImpl) AddProduct(sessionID, testID string) error {
	product, err := s.catalog.ByTestID(testID)
	if err != nil {
		return err
	}

	cart, err := s.load(sessionID)
	if err != nil {
		return err
	}
	if err := cart.Add(product.ID); err != nil {
		return err
	}

	if err := s.store.SaveCart(cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// RemoveProduct takes the product identified by testID out of the cart
func (s *CartServiceImpl) RemoveProduct(sessionID, testID string) error {
	product, err := s.catalog.ByTestID(testID)
	if err != nil {
		return err
	}

	cart, err := s.load(sessionID)
	if err != nil {
		return err
	}
	if err := cart.Remove(product.ID); err != nil {
		return err
	}

	if err := s.store.SaveCart(cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// View joins the session's cart with the catalog
func (s *CartServiceImpl) View(sessionID string) (*CartView, error) {
	cart, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Count: cart.Count()}
	for _, item := range cart.Items {
		product, err := s.catalog.ByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		line := CartLine{Product: product, Quantity: item.Quantity}
		view.Lines = append(view.Lines, line)
		view.Total += line.Subtotal()
	}
	return view, nil
}

// Clear drops the session's cart
func (s *CartServiceImpl) Clear(sessionID string) error {
	err := s.store.DeleteCart(sessionID)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
