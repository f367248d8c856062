package models

import (
	"errors"
	"fmt"
	"strings"
)

// Product is a storefront catalog entry. Price is in cents.
type Product struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price"`
	Image       string `yaml:"image"`
}

// Domain errors
var (
	ErrInvalidProductID    = errors.New("product id must be positive")
	ErrInvalidProductName  = errors.New("product name cannot be empty")
	ErrInvalidProductPrice = errors.New("product price must be positive")
)

// Validate checks the catalog invariants of a single product
func (p Product) Validate() error {
	if p.ID <= 0 {
		return ErrInvalidProductID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProductName
	}
	if p.Price <= 0 {
		return ErrInvalidProductPrice
	}
	return nil
}

// FormattedPrice returns the price the way the inventory shows it, e.g. $29.99
func (p Product) FormattedPrice() string {
	return FormatCents(p.Price)
}

// TestID returns the identifier suffix used by the product's data-test
// attributes, e.g. "sauce-labs-backpack".
func (p Product) TestID() string {
	return TestID(p.Name)
}

// TestID lowercases name, replaces spaces with hyphens and drops
// apostrophes. Other punctuation is kept.
func TestID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "-")
	return strings.ReplaceAll(id, "'", "")
}

// FormatCents renders cents as dollars with two decimals
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
