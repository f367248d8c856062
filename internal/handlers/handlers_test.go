package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/catalog"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

type fixture struct {
	auth      *services.AuthServiceImpl
	carts     services.CartService
	login     *LoginHandler
	inventory *InventoryHandler
	cart      *CartHandler
	add       *CartActionHandler
	remove    *CartActionHandler
	checkout  *CheckoutHandler
	logout    *LogoutHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, _ := test.NewNullLogger()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	f := &fixture{
		auth:  services.NewDefaultAuthService(),
		carts: services.NewCartService(services.NewMemoryCartStore(), cat),
	}

	if f.login, err = NewLoginHandler(f.auth, services.DefaultPassword, log); err != nil {
		t.Fatalf("Failed to create login handler: %v", err)
	}
	if f.inventory, err = NewInventoryHandler(cat, f.auth, f.carts, log); err != nil {
		t.Fatalf("Failed to create inventory handler: %v", err)
	}
	if f.cart, err = NewCartHandler(f.auth, f.carts, log); err != nil {
		t.Fatalf("Failed to create cart handler: %v", err)
	}
	if f.checkout, err = NewCheckoutHandler(f.auth, f.carts, log); err != nil {
		t.Fatalf("Failed to create checkout handler: %v", err)
	}
	f.add = NewCartActionHandler(CartActionAdd, f.auth, f.carts, log)
	f.remove = NewCartActionHandler(CartActionRemove, f.auth, f.carts, log)
	f.logout = NewLogoutHandler(f.auth, f.carts, log)
	return f
}

func (f *fixture) session(t *testing.T) *http.Cookie {
	t.Helper()
	id, err := f.auth.Login("standard_user", services.DefaultPassword)
	if err != nil {
		t.Fatalf("Login() unexpected error = %v", err)
	}
	return &http.Cookie{Name: SessionCookie, Value: id}
}

func serve(h http.Handler, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("Expected body to contain %q", w)
		}
	}
}

func TestLoginHandler_Get(t *testing.T) {
	f := newFixture(t)
	rr := serve(f.login, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	assertContains(t, body,
		`class="login_logo"`,
		`data-test="username"`,
		`data-test="password"`,
		`data-test="login-button"`,
		`data-test="login-container"`,
		`data-test="login-credentials"`,
		"standard_user<br>\n",
		"locked_out_user<br>\n",
		"secret_sauce",
	)
	if strings.Contains(body, "error-message-container") {
		t.Error("Error banner should not render without an error")
	}
}

func TestLoginHandler_Post(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		wantStatus int
		wantError  string
	}{
		{"standard user", "standard_user", "secret_sauce", http.StatusSeeOther, ""},
		{"locked out", "locked_out_user", "secret_sauce", http.StatusOK, "Epic sadface: Sorry, this user has been locked out."},
		{"bad password", "standard_user", "wrong", http.StatusOK, "Username and password do not match"},
		{"missing username", "", "secret_sauce", http.StatusOK, "Username is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rr := serve(f.login, postForm("/", url.Values{"user-name": {tt.username}, "password": {tt.password}}), nil)

			if rr.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantError == "" {
				if loc := rr.Header().Get("Location"); loc != "/inventory.html" {
					t.Errorf("Expected redirect to /inventory.html, got %q", loc)
				}
				cookies := rr.Result().Cookies()
				if len(cookies) != 1 || cookies[0].Name != SessionCookie || cookies[0].Value == "" {
					t.Errorf("Expected session cookie, got %v", cookies)
				}
				return
			}
			assertContains(t, rr.Body.String(), `class="error-message-container error"`, `class="error-button"`, tt.wantError)
		})
	}
}

func TestLoginHandler_MethodAndPath(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.login, httptest.NewRequest(http.MethodPut, "/", nil), nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
	rr = serve(f.login, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestProtectedPagesRedirectAnonymous(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		handler http.Handler
		req     *http.Request
		want    string
	}{
		{"inventory", f.inventory, httptest.NewRequest(http.MethodGet, "/inventory.html", nil), "/?from=inventory.html"},
		{"cart", f.cart, httptest.NewRequest(http.MethodGet, "/cart.html", nil), "/?from=cart.html"},
		{"checkout", f.checkout, httptest.NewRequest(http.MethodGet, "/checkout-step-one.html", nil), "/?from=checkout-step-one.html"},
		{"add", f.add, postForm("/cart/add", url.Values{"id": {"sauce-labs-backpack"}}), "/?from=cart/add"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(tt.handler, tt.req, &http.Cookie{Name: SessionCookie, Value: "stale"})
			if rr.Code != http.StatusSeeOther {
				t.Fatalf("Expected status 303, got %d", rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != tt.want {
				t.Errorf("Expected redirect to %q, got %q", tt.want, loc)
			}
		})
	}

	rr := serve(f.login, httptest.NewRequest(http.MethodGet, "/?from=inventory.html", nil), nil)
	assertContains(t, rr.Body.String(), "You can only access &#39;/inventory.html&#39; when you are logged in.")
}

func TestInventoryHandler(t *testing.T) {
	f := newFixture(t)
	cookie := f.session(t)

	rr := serve(f.inventory, httptest.NewRequest(http.MethodGet, "/inventory.html", nil), cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	assertContains(t, body,
		`data-test="title">Products</span>`,
		`data-test="inventory-container"`,
		`data-test="inventory-list"`,
		`data-test="product-sort-container"`,
		`<option value="az">`, `<option value="za">`, `<option value="lohi">`, `<option value="hilo">`,
		`data-test="active-option"`,
		`data-test="shopping-cart-link"`,
		`id="react-burger-menu-btn"`,
		`data-test="header-container"`,
		`data-test="primary-header"`,
		`data-test="secondary-header"`,
		`class="inventory_item_img"`,
		`data-test="add-to-cart-sauce-labs-backpack"`,
		`data-test="add-to-cart-sauce-labs-bolt-t-shirt"`,
		`data-test="add-to-cart-test.allthethings()-t-shirt-(red)"`,
		`data-test="inventory-item-price">$29.99</div>`,
	)
	if got := strings.Count(body, `class="inventory_item" data-test="inventory-item"`); got != 6 {
		t.Errorf("Expected 6 inventory items, got %d", got)
	}
	if strings.Contains(body, `data-test="shopping-cart-badge"`) {
		t.Error("Badge should not render for an empty cart")
	}
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)
	cookie := f.session(t)

	for _, id := range []string{"sauce-labs-backpack", "sauce-labs-bike-light", "sauce-labs-backpack"} {
		rr := serve(f.add, postForm("/cart/add", url.Values{"id": {id}}), cookie)
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("Add %s: expected status 303, got %d", id, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/inventory.html" {
			t.Errorf("Add %s: expected redirect to /inventory.html, got %q", id, loc)
		}
	}

	rr := serve(f.inventory, httptest.NewRequest(http.MethodGet, "/inventory.html", nil), cookie)
	assertContains(t, rr.Body.String(),
		`data-test="shopping-cart-badge">2</span>`,
		`data-test="remove-sauce-labs-backpack"`,
		`data-test="remove-sauce-labs-bike-light"`,
		`data-test="add-to-cart-sauce-labs-onesie"`,
	)

	rr = serve(f.cart, httptest.NewRequest(http.MethodGet, "/cart.html", nil), cookie)
	body := rr.Body.String()
	assertContains(t, body,
		`data-test="title">Your Cart</span>`,
		`data-test="cart-contents-container"`,
		`data-test="cart-list"`,
		`data-test="cart-quantity-label"`,
		`data-test="cart-desc-label"`,
		`data-test="item-quantity">1</div>`,
		`data-test="continue-shopping"`,
		`data-test="checkout"`,
		`class="cart_footer"`,
	)
	if got := strings.Count(body, `class="cart_item" data-test="inventory-item"`); got != 2 {
		t.Errorf("Expected 2 cart items, got %d", got)
	}

	rr = serve(f.remove, postForm("/cart/remove", url.Values{"id": {"sauce-labs-backpack"}, "return": {"/cart.html"}}), cookie)
	if loc := rr.Header().Get("Location"); loc != "/cart.html" {
		t.Errorf("Expected redirect to /cart.html, got %q", loc)
	}

	rr = serve(f.checkout, httptest.NewRequest(http.MethodGet, "/checkout-step-one.html", nil), cookie)
	assertContains(t, rr.Body.String(), "Checkout: Your Information", "Item total: $9.99")
}

func TestCartActionHandler_Errors(t *testing.T) {
	f := newFixture(t)
	cookie := f.session(t)

	rr := serve(f.add, postForm("/cart/add", url.Values{"id": {"sauce-labs-teapot"}}), cookie)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown product, got %d", rr.Code)
	}

	rr = serve(f.add, httptest.NewRequest(http.MethodGet, "/cart/add", nil), cookie)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}

	rr = serve(f.remove, postForm("/cart/remove", url.Values{"id": {"sauce-labs-onesie"}, "return": {"//evil.example"}}), cookie)
	if loc := rr.Header().Get("Location"); loc != "/inventory.html" {
		t.Errorf("Expected fallback redirect, got %q", loc)
	}
}

type failingCarts struct{ services.CartService }

func (failingCarts) View(string) (*services.CartView, error) { return nil, errors.New("store down") }
func (failingCarts) AddProduct(string, string) error       { return errors.New("store down") }

func TestHandlers_ServiceFailure(t *testing.T) {
	f := newFixture(t)
	cookie := f.session(t)
	log, _ := test.NewNullLogger()
	cat, _ := catalog.Default()

	inv, err := NewInventoryHandler(cat, f.auth, failingCarts{}, log)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}
	rr := serve(inv, httptest.NewRequest(http.MethodGet, "/inventory.html", nil), cookie)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}

	add := NewCartActionHandler(CartActionAdd, f.auth, failingCarts{}, log)
	rr = serve(add, postForm("/cart/add", url.Values{"id": {"sauce-labs-backpack"}}), cookie)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
}

func TestLogoutHandler(t *testing.T) {
	f := newFixture(t)
	cookie := f.session(t)
	serve(f.add, postForm("/cart/add", url.Values{"id": {"sauce-labs-backpack"}}), cookie)

	rr := serve(f.logout, httptest.NewRequest(http.MethodPost, "/logout", nil), cookie)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d", rr.Code)
	}
	if _, err := f.auth.Username(cookie.Value); err == nil {
		t.Error("Session should be closed after logout")
	}
	view, _ := f.carts.View(cookie.Value)
	if view.Count != 0 {
		t.Errorf("Cart should be cleared after logout, count = %d", view.Count)
	}

	rr = serve(f.logout, httptest.NewRequest(http.MethodGet, "/logout", nil), nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}

func TestSafeReturn(t *testing.T) {
	tests := map[string]string{
		"/cart.html":            "/cart.html",
		"":                      "/fallback",
		"https://evil.example/": "/fallback",
		"//evil.example":        "/fallback",
		"/\\evil.example":       "/fallback",
	}
	for in, want := range tests {
		if got := safeReturn(in, "/fallback"); got != want {
			t.Errorf("safeReturn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTemplateFuncs(t *testing.T) {
	if got := templateFuncs["testid"].(func(string) string)("Sauce Labs Backpack"); got != "sauce-labs-backpack" {
		t.Errorf("testid = %q", got)
	}
	if got := templateFuncs["price"].(func(int64) string)(2999); got != "$29.99" {
		t.Errorf("price = %q", got)
	}
}
