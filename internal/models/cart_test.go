package models

import (
	"errors"
	"testing"
)

func TestNewCart(t *testing.T) {
	if _, err := NewCart(""); err != ErrEmptySessionID {
		t.Errorf("NewCart(\"\") error = %v, want %v", err, ErrEmptySessionID)
	}

	cart, err := NewCart("abc")
	if err != nil {
		t.Fatalf("NewCart() unexpected error = %v", err)
	}
	if !cart.IsEmpty() {
		t.Error("New cart should be empty")
	}
}

func TestCartAddRemove(t *testing.T) {
	cart, _ := NewCart("abc")

	if err := cart.Add(4); err != nil {
		t.Fatalf("Add(4) unexpected error = %v", err)
	}
	if err := cart.Add(1); err != nil {
		t.Fatalf("Add(1) unexpected error = %v", err)
	}
	if err := cart.Add(4); !errors.Is(err, ErrAlreadyInCart) {
		t.Errorf("Add(4) twice error = %v, want %v", err, ErrAlreadyInCart)
	}
	if err := cart.Add(0); err != ErrInvalidProductID {
		t.Errorf("Add(0) error = %v, want %v", err, ErrInvalidProductID)
	}

	if got := cart.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if !cart.Contains(4) || !cart.Contains(1) {
		t.Error("Cart should contain products 4 and 1")
	}

	if err := cart.Remove(4); err != nil {
		t.Fatalf("Remove(4) unexpected error = %v", err)
	}
	if cart.Contains(4) {
		t.Error("Cart should not contain product 4 after removal")
	}
	if err := cart.Remove(4); !errors.Is(err, ErrNotInCart) {
		t.Errorf("Remove(4) twice error = %v, want %v", err, ErrNotInCart)
	}

	if cart.Items[0].ProductID != 1 {
		t.Errorf("Remaining item = %d, want 1", cart.Items[0].ProductID)
	}
}

func TestCartClone(t *testing.T) {
	cart, _ := NewCart("abc")
	cart.Add(4)

	clone := cart.Clone()
	clone.Add(1)
	clone.Items[0].Quantity = 3

	if cart.Count() != 1 {
		t.Errorf("Original cart changed through clone: count = %d", cart.Count())
	}

	cart.Clear()
	if !cart.IsEmpty() {
		t.Error("Clear() should empty the cart")
	}
}
