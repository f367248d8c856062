package models

import (
	"errors"
	"fmt"
)

// LineItem is one product in a cart
type LineItem struct {
	ProductID int
	Quantity  int
}

// Cart belongs to one storefront session
type Cart struct {
	SessionID string
	Items     []LineItem
}

// Domain errors
var (
	ErrEmptySessionID = errors.New("session id cannot be empty")
	ErrAlreadyInCart  = errors.New("product is already in the cart")
	ErrNotInCart      = errors.New("product is not in the cart")
)

// NewCart creates an empty cart for sessionID
func NewCart(sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	return &Cart{SessionID: sessionID}, nil
}

// Add puts one unit of a product into the cart. A product can be added once;
// the storefront swaps its add button for a remove button afterwards.
func (c *Cart) Add(productID int) error {
	if productID <= 0 {
		return ErrInvalidProductID
	}
	if c.Contains(productID) {
		return fmt.Errorf("%w: product %d", ErrAlreadyInCart, productID)
	}
	c.Items = append(c.Items, LineItem{ProductID: productID, Quantity: 1})
	return nil
}

// Remove deletes a product line from the cart
func (c *Cart) Remove(productID int) error {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: product %d", ErrNotInCart, productID)
}

// Contains reports whether the product is in the cart
func (c *Cart) Contains(productID int) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of units in the cart, as shown by the cart badge
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear removes every line
func (c *Cart) Clear() {
	c.Items = nil
}

// Clone returns a copy that shares no state with c
func (c *Cart) Clone() *Cart {
	return &Cart{
		SessionID: c.SessionID,
		Items:     append([]LineItem(nil), c.Items...),
	}
}
