package pages

import (
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/browser/browsertest"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	return &config.Settings{
		BaseURL:          "https://shop.test",
		Browser:          "chromium",
		Timeout:          30000,
		StandardUser:     "standard_user",
		StandardPassword: "secret_sauce",
		LockedUser:       "locked_out_user",
		ProblemUser:      "problem_user",
		PerformanceUser:  "performance_glitch_user",
		ScreenshotsDir:   t.TempDir(),
	}
}

func quietLogger() Option {
	logger, _ := test.NewNullLogger()
	return WithLogger(logger)
}

type product struct {
	name  string
	price string
}

var catalog = []product{
	{"Sauce Labs Backpack", "$29.99"},
	{"Sauce Labs Bike Light", "$9.99"},
	{"Sauce Labs Bolt T-Shirt", "$15.99"},
	{"Sauce Labs Fleece Jacket", "$49.99"},
	{"Sauce Labs Onesie", "$7.99"},
	{"Test.allTheThings() T-Shirt (Red)", "$15.99"},
}

// inventoryFake renders products as the inventory page would, with working
// add and remove buttons and a cart badge.
func inventoryFake(products []product) *browsertest.Page {
	fake := browsertest.NewPage()
	fake.Add(InventoryTitle, browsertest.NewElement("Products"))
	fake.Add(InventoryContainer, browsertest.NewElement(""))

	inCart := 0
	updateBadge := func() {
		fake.Remove(InventoryCartBadge)
		if inCart > 0 {
			fake.Add(InventoryCartBadge, browsertest.NewElement(strconv.Itoa(inCart)))
		}
	}

	for _, pr := range products {
		name := browsertest.NewElement(pr.name)
		price := browsertest.NewElement(pr.price)
		fake.Add(InventoryItem, browsertest.NewElement(pr.name).
			Add(InventoryItemName, name).
			Add(InventoryItemPrice, price))
		fake.Add(InventoryItemName, name)
		fake.Add(InventoryItemPrice, price)

		id := InventoryTestID(pr.name)
		add := browsertest.NewElement("Add to cart")
		remove := browsertest.NewElement("Remove")
		remove.Hidden = true
		add.OnClick = func() {
			add.Hidden, remove.Hidden = true, false
			inCart++
			updateBadge()
		}
		remove.OnClick = func() {
			add.Hidden, remove.Hidden = false, true
			inCart--
			updateBadge()
		}
		fake.Add(`[data-test="add-to-cart-`+id+`"]`, add)
		fake.Add(`[data-test="remove-`+id+`"]`, remove)
		fake.Add(InventoryAddToCartButton, add)
	}

	fake.Add(InventorySortDropdown, browsertest.NewElement(""))
	fake.OnSelect = func(_, value string) {
		sorted := append([]product(nil), products...)
		sort.SliceStable(sorted, func(i, j int) bool {
			switch SortOption(value) {
			case SortNameDesc:
				return sorted[i].name > sorted[j].name
			case SortPriceAsc:
				return priceOf(sorted[i]) < priceOf(sorted[j])
			case SortPriceDesc:
				return priceOf(sorted[i]) > priceOf(sorted[j])
			default:
				return sorted[i].name < sorted[j].name
			}
		})
		fake.Remove(InventoryItemName)
		fake.Remove(InventoryItemPrice)
		for _, pr := range sorted {
			fake.Add(InventoryItemName, browsertest.NewElement(pr.name))
			fake.Add(InventoryItemPrice, browsertest.NewElement(pr.price))
		}
	}
	return fake
}

func priceOf(p product) float64 {
	v, _ := strconv.ParseFloat(strings.TrimPrefix(p.price, "$"), 64)
	return v
}
