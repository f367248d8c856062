package pages

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
)

// Inventory page selectors
const (
	InventoryTitle           = `[data-test="title"]`
	InventoryContainer       = `[data-test="inventory-container"]`
	InventoryList            = `[data-test="inventory-list"]`
	InventoryItem            = `[data-test="inventory-item"]`
	InventoryItemName        = `[data-test="inventory-item-name"]`
	InventoryItemPrice       = `[data-test="inventory-item-price"]`
	InventoryItemImage       = `.inventory_item_img`
	InventoryItemDesc        = `[data-test="inventory-item-desc"]`
	InventoryAddToCartButton = `[data-test^="add-to-cart"]`
	InventoryRemoveButton    = `[data-test^="remove"]`
	InventorySortDropdown    = `[data-test="product-sort-container"]`
	InventoryActiveOption    = `[data-test="active-option"]`
	InventoryCartLink        = `[data-test="shopping-cart-link"]`
	InventoryCartBadge       = `.shopping_cart_badge`
	InventoryMenuButton      = `#react-burger-menu-btn`

	HeaderContainer = `[data-test="header-container"]`
	PrimaryHeader   = `[data-test="primary-header"]`
	SecondaryHeader = `[data-test="secondary-header"]`
)

// SortOption is a value accepted by the product sort dropdown.
type SortOption string

// Sort options
const (
	SortNameAsc   SortOption = "az"
	SortNameDesc  SortOption = "za"
	SortPriceAsc  SortOption = "lohi"
	SortPriceDesc SortOption = "hilo"
)

// InventoryTestID derives the suffix of a product's add and remove button
// identifiers: lowercase, spaces to hyphens, apostrophes dropped.
func InventoryTestID(productName string) string {
	id := strings.ToLower(productName)
	id = strings.ReplaceAll(id, " ", "-")
	return strings.ReplaceAll(id, "'", "")
}

func addToCartSelector(productName string) string {
	return fmt.Sprintf(`[data-test="add-to-cart-%s"]`, InventoryTestID(productName))
}

func inventoryRemoveSelector(productName string) string {
	return fmt.Sprintf(`[data-test="remove-%s"]`, InventoryTestID(productName))
}

// InventoryPage is the product listing shown after login.
type InventoryPage struct {
	Base
	URL string
}

// NewInventoryPage returns the inventory page object for page.
func NewInventoryPage(page browser.Page, settings *config.Settings, opts ...Option) *InventoryPage {
	return &InventoryPage{
		Base: NewBase(page, settings, opts...),
		URL:  settings.BaseURL + "/inventory.html",
	}
}

// IsLoaded reports whether the title and grid are visible and the title
// reads exactly "Products".
func (p *InventoryPage) IsLoaded() bool {
	if !p.IsElementVisible(InventoryTitle, 0) || !p.IsElementVisible(InventoryContainer, 0) {
		return false
	}
	title, err := p.GetText(InventoryTitle, 0)
	return err == nil && title == "Products"
}

// VerifyProductsPage reports whether the title is visible and mentions
// "Products".
func (p *InventoryPage) VerifyProductsPage() bool {
	var ok bool
	_ = p.step("Verify Products page is displayed", func() error {
		if !p.IsElementVisible(InventoryTitle, 0) {
			return nil
		}
		title, err := p.GetText(InventoryTitle, 0)
		ok = err == nil && strings.Contains(title, "Products")
		return nil
	})
	return ok
}

// VerifyAddToCartButtons reports whether at least one add button exists.
func (p *InventoryPage) VerifyAddToCartButtons() bool {
	return p.count(InventoryAddToCartButton) > 0
}

// GetProductNames returns the displayed product names in page order.
func (p *InventoryPage) GetProductNames() []string {
	return p.readAll(InventoryItemName)
}

// GetProductPrices returns the displayed prices, e.g. "$29.99", in page order.
func (p *InventoryPage) GetProductPrices() []string {
	return p.readAll(InventoryItemPrice)
}

// AddProductToCart clicks the add button of productName.
func (p *InventoryPage) AddProductToCart(productName string) error {
	return p.step("Add product to cart: "+productName, func() error {
		return p.ClickElement(addToCartSelector(productName), 0)
	})
}

// RemoveProductFromCart clicks the remove button of productName.
func (p *InventoryPage) RemoveProductFromCart(productName string) error {
	return p.step("Remove product from cart: "+productName, func() error {
		return p.ClickElement(inventoryRemoveSelector(productName), 0)
	})
}

// SortProducts selects option in the sort dropdown.
func (p *InventoryPage) SortProducts(option SortOption) error {
	return p.step("Sort products by: "+string(option), func() error {
		return p.SelectDropdownOption(InventorySortDropdown, string(option), 0)
	})
}

// SortByNameAToZ and the three helpers below are shorthands for SortProducts.
func (p *InventoryPage) SortByNameAToZ() error       { return p.SortProducts(SortNameAsc) }
func (p *InventoryPage) SortByNameZToA() error       { return p.SortProducts(SortNameDesc) }
func (p *InventoryPage) SortByPriceLowToHigh() error { return p.SortProducts(SortPriceAsc) }
func (p *InventoryPage) SortByPriceHighToLow() error { return p.SortProducts(SortPriceDesc) }

// VerifyProductsSortedAlphabetically compares the displayed names against
// their lexicographic order.
func (p *InventoryPage) VerifyProductsSortedAlphabetically(ascending bool) bool {
	return namesSorted(p.GetProductNames(), ascending)
}

// VerifyProductsSortedByPrice compares the displayed prices against their
// numeric order. Unparseable prices fail the check.
func (p *InventoryPage) VerifyProductsSortedByPrice(ascending bool) bool {
	return pricesSorted(p.GetProductPrices(), ascending)
}

func namesSorted(names []string, ascending bool) bool {
	want := slices.Clone(names)
	slices.Sort(want)
	if !ascending {
		slices.Reverse(want)
	}
	return slices.Equal(names, want)
}

func pricesSorted(prices []string, ascending bool) bool {
	values := make([]float64, 0, len(prices))
	for _, price := range prices {
		v, err := parsePrice(price)
		if err != nil {
			return false
		}
		values = append(values, v)
	}
	want := slices.Clone(values)
	slices.Sort(want)
	if !ascending {
		slices.Reverse(want)
	}
	return slices.Equal(values, want)
}

// parsePrice strips the currency symbol from a price such as "$29.99".
func parsePrice(price string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(price, "$", "")), 64)
}

// ClickShoppingCart opens the cart through the header link.
func (p *InventoryPage) ClickShoppingCart() error {
	return p.step("Click shopping cart", func() error {
		return p.ClickElement(InventoryCartLink, 0)
	})
}

// GetCartBadgeCount returns the badge number, 0 when absent or non-numeric.
func (p *InventoryPage) GetCartBadgeCount() int {
	return p.badgeCount(InventoryCartBadge)
}

// GetInventoryItemCount returns the number of product cards, 0 on error.
func (p *InventoryPage) GetInventoryItemCount() int {
	return p.count(InventoryItem)
}

// ClickProduct opens the detail view of the product whose name contains
// productName.
func (p *InventoryPage) ClickProduct(productName string) error {
	return p.step("Click on product: "+productName, func() error {
		loc := p.page.Locator(InventoryItemName).Filter(productName)
		if err := loc.Click(); err != nil {
			return fmt.Errorf("failed to click product %s: %w", productName, err)
		}
		return nil
	})
}

// IsProductInCart reports whether the product's remove button is visible.
func (p *InventoryPage) IsProductInCart(productName string) bool {
	return p.IsElementVisible(inventoryRemoveSelector(productName), 0)
}
