package pages

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
)

// Cart page selectors
const (
	CartTitle                  = `[data-test="title"]`
	CartContentsContainer      = `[data-test="cart-contents-container"]`
	CartList                   = `[data-test="cart-list"]`
	CartItem                   = `[data-test="inventory-item"]`
	CartItemName               = `[data-test="inventory-item-name"]`
	CartItemPrice              = `[data-test="inventory-item-price"]`
	CartItemDesc               = `[data-test="inventory-item-desc"]`
	CartQuantity               = `[data-test="item-quantity"]`
	CartQuantityLabel          = `[data-test="cart-quantity-label"]`
	CartDescLabel              = `[data-test="cart-desc-label"]`
	CartRemoveButton           = `[data-test^="remove"]`
	CartContinueShoppingButton = `[data-test="continue-shopping"]`
	CartCheckoutButton         = `[data-test="checkout"]`
	CartFooter                 = `.cart_footer`
	CartBadge                  = `[data-test="shopping-cart-badge"]`
)

// CartItemDetails is one cart line as rendered.
type CartItemDetails struct {
	Name     string
	Price    string
	Quantity string
}

// CartTestID derives the suffix of a cart line's remove button identifier.
// On top of InventoryTestID it drops '.', '(' and ')', so names carrying
// those characters resolve to a different identifier than on the inventory
// page.
func CartTestID(itemName string) string {
	return strings.NewReplacer(".", "", "(", "", ")", "").Replace(InventoryTestID(itemName))
}

// CartPage is the shopping cart.
type CartPage struct {
	Base
	URL string
}

// NewCartPage returns the cart page object for page.
func NewCartPage(page browser.Page, settings *config.Settings, opts ...Option) *CartPage {
	return &CartPage{
		Base: NewBase(page, settings, opts...),
		URL:  settings.BaseURL + "/cart.html",
	}
}

// IsLoaded reports whether the title is visible and reads exactly
// "Your Cart".
func (p *CartPage) IsLoaded() bool {
	if !p.IsElementVisible(CartTitle, 0) {
		return false
	}
	title, err := p.GetText(CartTitle, 0)
	return err == nil && title == "Your Cart"
}

// VerifyCartPage reports whether the title is visible and mentions
// "Your Cart".
func (p *CartPage) VerifyCartPage() bool {
	if !p.IsElementVisible(CartTitle, 0) {
		return false
	}
	title, err := p.GetText(CartTitle, 0)
	return err == nil && strings.Contains(title, "Your Cart")
}

// GetCartItemCount returns the number of cart lines.
func (p *CartPage) GetCartItemCount() int {
	return p.count(CartItem)
}

// GetCartItemNames returns the line names in page order.
func (p *CartPage) GetCartItemNames() []string {
	return p.readAll(CartItemName)
}

// GetCartItemPrices returns the displayed line prices in page order.
func (p *CartPage) GetCartItemPrices() []string {
	return p.readAll(CartItemPrice)
}

// GetCartItemQuantities returns the quantity of every line. Non-numeric
// quantities read as 0.
func (p *CartPage) GetCartItemQuantities() []int {
	texts := p.readAll(CartQuantity)
	quantities := make([]int, len(texts))
	for i, text := range texts {
		quantities[i] = atoiOrZero(text)
	}
	return quantities
}

// GetCartItemsDetails reads name, price and quantity from every line item.
// An empty quantity reads as "0".
func (p *CartPage) GetCartItemsDetails() []CartItemDetails {
	items, err := p.page.Locator(CartItem).All()
	if err != nil {
		return nil
	}

	details := make([]CartItemDetails, 0, len(items))
	for _, item := range items {
		d := CartItemDetails{
			Name:     textOf(item.Locator(CartItemName)),
			Price:    textOf(item.Locator(CartItemPrice)),
			Quantity: textOf(item.Locator(CartQuantity)),
		}
		if d.Quantity == "" {
			d.Quantity = "0"
		}
		details = append(details, d)
	}
	return details
}

func textOf(loc browser.Locator) string {
	text, err := loc.TextContent()
	if err != nil {
		return ""
	}
	return text
}

// RemoveItemByName clicks the remove button of the line named itemName.
func (p *CartPage) RemoveItemByName(itemName string) error {
	return p.step("Remove item from cart: "+itemName, func() error {
		sel := fmt.Sprintf(`[data-test="remove-%s"]`, CartTestID(itemName))
		return p.ClickElement(sel, 0)
	})
}

// ContinueShopping returns to the inventory.
func (p *CartPage) ContinueShopping() error {
	return p.step("Continue shopping", func() error {
		return p.ClickElement(CartContinueShoppingButton, 0)
	})
}

// ProceedToCheckout starts the checkout flow.
func (p *CartPage) ProceedToCheckout() error {
	return p.step("Proceed to checkout", func() error {
		return p.ClickElement(CartCheckoutButton, 0)
	})
}

// IsCartEmpty reports whether the cart has no lines.
func (p *CartPage) IsCartEmpty() bool {
	return p.GetCartItemCount() == 0
}

// VerifyItemInCart reports whether a line is named exactly itemName.
func (p *CartPage) VerifyItemInCart(itemName string) bool {
	return slices.Contains(p.GetCartItemNames(), itemName)
}

// VerifyItemNotInCart is the negation of VerifyItemInCart.
func (p *CartPage) VerifyItemNotInCart(itemName string) bool {
	return !slices.Contains(p.GetCartItemNames(), itemName)
}

// CalculateTotalPrice sums price times quantity over the cart lines.
func (p *CartPage) CalculateTotalPrice() float64 {
	return totalPrice(p.GetCartItemPrices(), p.GetCartItemQuantities(), p.log)
}

// totalPrice pairs prices and quantities by position. Extra entries on
// either side are ignored and malformed prices are skipped; both are logged.
func totalPrice(prices []string, quantities []int, log logrus.FieldLogger) float64 {
	if len(prices) != len(quantities) {
		log.WithFields(logrus.Fields{
			"prices":     len(prices),
			"quantities": len(quantities),
		}).Warn("cart price and quantity counts differ, extra entries ignored")
	}

	total := 0.0
	for i, price := range prices {
		if i >= len(quantities) {
			break
		}
		v, err := parsePrice(price)
		if err != nil {
			log.WithField("price", price).Warn("skipping malformed cart price")
			continue
		}
		total += v * float64(quantities[i])
	}
	return total
}

// GetCartBadgeCount returns the badge number, 0 when absent or non-numeric.
func (p *CartPage) GetCartBadgeCount() int {
	return p.badgeCount(CartBadge)
}

// WaitForCartPageLoad waits for the title and the cart contents.
func (p *CartPage) WaitForCartPageLoad(timeout int) error {
	if _, err := p.WaitForElement(CartTitle, timeout); err != nil {
		return err
	}
	_, err := p.WaitForElement(CartContentsContainer, timeout)
	return err
}
