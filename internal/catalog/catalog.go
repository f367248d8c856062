// Package catalog loads the storefront's product list from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
)

//go:embed products.yaml
var defaultProducts []byte

// ErrProductNotFound is returned by lookups that match nothing.
var ErrProductNotFound = errors.New("product not found")

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []models.Product
	byID     map[int]int
	byTestID map[string]int
}

type document struct {
	Products []models.Product `yaml:"products"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultProducts)
}

// Parse decodes a YAML catalog and validates every product. Ids and
// derived test identifiers must be unique.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}

	c := &Catalog{
		products: doc.Products,
		byID:     make(map[int]int, len(doc.Products)),
		byTestID: make(map[string]int, len(doc.Products)),
	}
	for i, p := range doc.Products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if _, dup := c.byTestID[p.TestID()]; dup {
			return nil, fmt.Errorf("duplicate product identifier %q", p.TestID())
		}
		c.byID[p.ID] = i
		c.byTestID[p.TestID()] = i
	}
	return c, nil
}

// All returns the products in catalog order.
func (c *Catalog) All() []models.Product {
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID returns the product with id or ErrProductNotFound.
func (c *Catalog) ByID(id int) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// ByTestID finds a product by the identifier its buttons carry.
func (c *Catalog) ByTestID(testID string) (models.Product, error) {
	i, ok := c.byTestID[testID]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, testID)
	}
	return c.products[i], nil
}
