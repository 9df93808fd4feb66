package http_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pinturas-diamante/catalog-site/internal/auth"
	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/catalog"
	api "github.com/pinturas-diamante/catalog-site/internal/http"
	"github.com/pinturas-diamante/catalog-site/internal/http/handlers"
	rl "github.com/pinturas-diamante/catalog-site/internal/http/rate_limiter"
	"github.com/pinturas-diamante/catalog-site/internal/order"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "diamante_session"

var (
	cartRepo *repo.InMemoryCartRepository
	sessions = auth.NewSessions("test-secret", time.Hour)
)

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	c := catalog.MustLoad()
	catalogRepo := repo.NewInMemoryCatalogRepository(c)
	cartRepo = repo.NewInMemoryCartRepository()
	carts := cart.NewService(cartRepo, catalogRepo, nil)

	api.SetCatalogRepo(catalogRepo)
	api.SetCartService(carts)
	api.SetOrderService(order.NewService(carts, nil, 0, nil))
	api.SetSEOGenerator(seo.NewGenerator(seo.DefaultSite(), catalogRepo))
	api.SetRenderer(views.MustNew())
	api.SetStoreInfo(c.Business, c.Locations)
}

func clearAllCarts() {
	cartRepo.Clear()
}

func newRouter() http.Handler {
	return api.NewRouter(api.Options{
		Sessions: sessions,
		Cookie:   api.CookieConfig{Name: cookieName},
		Limiter:  rl.New(1000, 1000, time.Minute),
	})
}

// client replays the session cookie like a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, handler: h}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) sendJSON(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cart.Cart {
	t.Helper()
	var c cart.Cart
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	return c
}

func TestGetCategoriesHandler(t *testing.T) {
	w := newClient(t, newRouter()).get("/api/categories")
	require.Equal(t, http.StatusOK, w.Code)

	var categories []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&categories))
	require.Len(t, categories, 3)
	assert.Equal(t, "automotriz", categories[0]["id"])
}

func TestGetSubCategoriesHandler(t *testing.T) {
	c := newClient(t, newRouter())

	w := c.get("/api/categories/maderas/subcategories")
	require.Equal(t, http.StatusOK, w.Code)
	var subs []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&subs))
	assert.NotEmpty(t, subs)
	for _, s := range subs {
		assert.Equal(t, "maderas", s["category_id"])
	}

	w = c.get("/api/categories/nope/subcategories")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterProductsHandler(t *testing.T) {
	c := newClient(t, newRouter())

	tests := []struct {
		name       string
		query      string
		expectCode int
		wantTotal  int
		wantLen    int
	}{
		{"all products", "", http.StatusOK, 46, 46},
		{"accent insensitive search", "?q=vinilicas", http.StatusOK, -1, -1},
		{"paginated", "?limit=5&offset=10", http.StatusOK, 46, 5},
		{"offset past the end", "?offset=100", http.StatusOK, 0, 0},
		{"subcategory", "?category=decorativo&subcategory=imper-deco", http.StatusOK, -1, -1},
		{"zero limit", "?limit=0", http.StatusBadRequest, 0, 0},
		{"negative offset", "?offset=-1", http.StatusBadRequest, 0, 0},
		{"non numeric limit", "?limit=ten", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.get("/api/products" + tt.query)
			require.Equal(t, tt.expectCode, w.Code, w.Body.String())
			if tt.expectCode != http.StatusOK {
				return
			}

			var resp handlers.ProductsSearchResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			if tt.wantTotal >= 0 {
				assert.Equal(t, tt.wantTotal, resp.Meta.TotalCount)
			}
			if tt.wantLen >= 0 {
				assert.Len(t, resp.Data, tt.wantLen)
			} else {
				assert.NotEmpty(t, resp.Data)
			}
		})
	}
}

func TestFilterProductsHandler_ValidationErrors(t *testing.T) {
	w := newClient(t, newRouter()).get("/api/products?limit=-2&offset=-1")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs []handlers.ValidationError
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errs))
	require.Len(t, errs, 2)
	assert.Equal(t, "limit", errs[0].Field)
	assert.Equal(t, "offset", errs[1].Field)
}

func TestGetProductByIDHandler(t *testing.T) {
	c := newClient(t, newRouter())

	w := c.get("/api/products/auto-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Acondicionador de metales"`)

	w = c.get("/api/products/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "product not found", resp.Error)
}

func TestCartAPI(t *testing.T) {
	t.Cleanup(clearAllCarts)
	c := newClient(t, newRouter())

	w := c.get("/api/cart")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, c.cookie, "expected a session cookie")
	assert.True(t, c.cookie.HttpOnly)
	assert.True(t, decodeCart(t, w).IsEmpty())

	w = c.sendJSON(http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{ProductID: "auto-1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = c.sendJSON(http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{ProductID: "auto-1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = c.sendJSON(http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{ProductID: "mad-5"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeCart(t, w)
	assert.Equal(t, 3, got.TotalItems)
	require.Len(t, got.Items, 2)

	qty := 7
	w = c.sendJSON(http.MethodPut, "/api/cart/items/mad-5", handlers.UpdateCartItemRequest{Quantity: &qty})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, decodeCart(t, w).TotalItems)

	w = c.sendJSON(http.MethodDelete, "/api/cart/items/auto-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decodeCart(t, w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "mad-5", got.Items[0].ID)

	w = c.sendJSON(http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, decodeCart(t, c.get("/api/cart")).IsEmpty())
}

func TestCartAPI_Invalid(t *testing.T) {
	t.Cleanup(clearAllCarts)
	c := newClient(t, newRouter())

	negative := -1
	zero := 0
	tests := []struct {
		name       string
		method     string
		path       string
		payload    any
		expectCode int
	}{
		{"missing product id", http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{}, http.StatusBadRequest},
		{"unknown product", http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{ProductID: "nope"}, http.StatusNotFound},
		{"unknown field", http.MethodPost, "/api/cart/items", map[string]any{"product": "auto-1"}, http.StatusBadRequest},
		{"missing quantity", http.MethodPut, "/api/cart/items/auto-1", handlers.UpdateCartItemRequest{}, http.StatusBadRequest},
		{"negative quantity", http.MethodPut, "/api/cart/items/auto-1", handlers.UpdateCartItemRequest{Quantity: &negative}, http.StatusBadRequest},
		{"item not in cart", http.MethodPut, "/api/cart/items/auto-1", handlers.UpdateCartItemRequest{Quantity: &zero}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.sendJSON(tt.method, tt.path, tt.payload)
			assert.Equal(t, tt.expectCode, w.Code, w.Body.String())
		})
	}
}

func TestCartAPI_SessionsAreIsolated(t *testing.T) {
	t.Cleanup(clearAllCarts)
	r := newRouter()
	alice := newClient(t, r)
	bob := newClient(t, r)

	w := alice.sendJSON(http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{ProductID: "dec-1"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, decodeCart(t, bob.get("/api/cart")).IsEmpty())
	assert.Equal(t, 1, decodeCart(t, alice.get("/api/cart")).TotalItems)
}

func TestSessionMiddleware_ReplacesInvalidCookie(t *testing.T) {
	c := newClient(t, newRouter())
	c.cookie = &http.Cookie{Name: cookieName, Value: "forged"}

	w := c.get("/api/cart")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEqual(t, "forged", c.cookie.Value)

	_, err := sessions.Parse(c.cookie.Value)
	assert.NoError(t, err)

	// A valid cookie is kept as is.
	w = c.get("/api/cart")
	assert.Empty(t, w.Result().Cookies())
}

func TestPlaceOrderHandler(t *testing.T) {
	t.Cleanup(clearAllCarts)
	c := newClient(t, newRouter())

	w := c.sendJSON(http.MethodPost, "/api/orders", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	c.sendJSON(http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{ProductID: "dec-1"})
	c.sendJSON(http.MethodPost, "/api/cart/items", handlers.AddCartItemRequest{ProductID: "dec-2"})

	w = c.sendJSON(http.MethodPost, "/api/orders", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var receipt order.Receipt
	require.NoError(t, json.NewDecoder(w.Body).Decode(&receipt))
	assert.NotEmpty(t, receipt.OrderID)
	assert.Equal(t, 2, receipt.TotalItems)

	assert.True(t, decodeCart(t, c.get("/api/cart")).IsEmpty())
}

func TestSEOHandlers(t *testing.T) {
	c := newClient(t, newRouter())

	w := c.get("/api/seo/products/auto-1")
	require.Equal(t, http.StatusOK, w.Code)
	var data map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
	assert.Equal(t, "https://pinturasdiamante.com/product/auto-1", data["canonical"])
	og := data["open_graph"].(map[string]any)
	assert.Equal(t, "product", og["og:type"])

	assert.Equal(t, http.StatusNotFound, c.get("/api/seo/products/missing").Code)
	assert.Equal(t, http.StatusOK, c.get("/api/seo/categories/automotriz").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/api/seo/categories/missing").Code)

	w = c.get("/api/seo/organization")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"@type":"Organization"`)

	w = c.get("/api/seo/local-business")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"@type":"LocalBusiness"`)
}

func TestSitemapAndRobots(t *testing.T) {
	c := newClient(t, newRouter())

	w := c.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	var set struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))
	assert.Len(t, set.URLs, 70)

	w = c.get("/robots.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: https://pinturasdiamante.com/sitemap.xml")

	w = c.get("/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":46`)
}

func TestPages(t *testing.T) {
	c := newClient(t, newRouter())

	tests := []struct {
		path       string
		expectCode int
		contains   string
	}{
		{"/", http.StatusOK, "Presencia Regional Sur-Sureste"},
		{"/contact", http.StatusOK, "Nuestras Sucursales"},
		{"/catalog", http.StatusOK, "Nuestro Catálogo"},
		{"/catalog?q=vinilicas", http.StatusOK, "Resultados para"},
		{"/catalog/maderas", http.StatusOK, "Ver Productos"},
		{"/catalog/decorativo/imper-deco", http.StatusOK, "Imperdiamante"},
		{"/product/auto-1", http.StatusOK, "Añadir al Carrito"},
		{"/cart", http.StatusOK, "Tu carrito está vacío."},
		{"/catalog/nope", http.StatusNotFound, handlers.NotAvailableMessage},
		{"/catalog/maderas/imper-deco", http.StatusNotFound, handlers.NotAvailableMessage},
		{"/catalog/decorativo/nope", http.StatusNotFound, handlers.NotAvailableMessage},
		{"/product/nope", http.StatusNotFound, handlers.NotAvailableMessage},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := c.get(tt.path)
			require.Equal(t, tt.expectCode, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	w := newClient(t, newRouter()).get("/no/such/page")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = newClient(t, newRouter()).get("/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartForms(t *testing.T) {
	t.Cleanup(clearAllCarts)
	c := newClient(t, newRouter())

	w := c.postForm("/cart/add", url.Values{"product_id": {"auto-1"}, "redirect": {"/product/auto-1"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product/auto-1", w.Header().Get("Location"))

	w = c.postForm("/cart/add", url.Values{"product_id": {"auto-1"}, "redirect": {"https://evil.example.com"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	w = c.get("/cart")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Carrito (2)")
	assert.Contains(t, w.Body.String(), "Acondicionador de metales")

	w = c.postForm("/cart/update", url.Values{"product_id": {"auto-1"}, "quantity": {"5"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, c.get("/cart").Body.String(), "Carrito (5)")

	w = c.postForm("/cart/checkout", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	w = c.get("/cart")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "¡Pedido confirmado!")
	assert.Contains(t, w.Body.String(), "Artículos: 5")
	assert.Contains(t, w.Body.String(), "Tu carrito está vacío.")

	// The confirmation is shown once.
	assert.NotContains(t, c.get("/cart").Body.String(), "¡Pedido confirmado!")

	w = c.postForm("/cart/checkout", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart?aviso=vacio", w.Header().Get("Location"))

	c.postForm("/cart/add", url.Values{"product_id": {"dec-3"}})
	c.postForm("/cart/remove", url.Values{"product_id": {"dec-3"}})
	assert.Contains(t, c.get("/cart").Body.String(), "Carrito (0)")

	c.postForm("/cart/add", url.Values{"product_id": {"dec-3"}})
	c.postForm("/cart/clear", nil)
	assert.Contains(t, c.get("/cart").Body.String(), "Carrito (0)")

	w = c.postForm("/cart/add", url.Values{"product_id": {"nope"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := api.NewRouter(api.Options{
		Sessions: sessions,
		Cookie:   api.CookieConfig{Name: cookieName},
		Limiter:  rl.New(1, 2, time.Minute),
	})
	c := newClient(t, r)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, c.get("/api/categories").Code, fmt.Sprintf("request %d", i))
	}
	w := c.get("/api/categories")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// Pages are not rate limited.
	assert.Equal(t, http.StatusOK, c.get("/contact").Code)
}

func TestCartPage_IgnoresOrderQueryParams(t *testing.T) {
	t.Cleanup(clearAllCarts)
	c := newClient(t, newRouter())

	w := c.get("/cart?pedido=fake-order&articulos=99")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "¡Pedido confirmado!")
	assert.NotContains(t, w.Body.String(), "fake-order")
}

func TestCartPage_ReceiptIsPerSession(t *testing.T) {
	t.Cleanup(clearAllCarts)
	r := newRouter()
	buyer := newClient(t, r)
	other := newClient(t, r)

	buyer.postForm("/cart/add", url.Values{"product_id": {"dec-1"}})
	other.get("/cart")
	buyer.postForm("/cart/checkout", nil)

	assert.NotContains(t, other.get("/cart").Body.String(), "¡Pedido confirmado!")
	assert.Contains(t, buyer.get("/cart").Body.String(), "¡Pedido confirmado!")
}

func TestRateLimit_IgnoresForwardedHeadersByDefault(t *testing.T) {
	r := api.NewRouter(api.Options{
		Sessions: sessions,
		Cookie:   api.CookieConfig{Name: cookieName},
		Limiter:  rl.New(1, 2, time.Minute),
	})

	codes := map[int]int{}
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.RemoteAddr = "203.0.113.7:4321"
		ip := fmt.Sprintf("10.0.0.%d", i)
		req.Header.Set("X-Forwarded-For", ip)
		req.Header.Set("X-Real-IP", ip)
		req.Header.Set("True-Client-IP", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes[w.Code]++
	}

	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 18, codes[http.StatusTooManyRequests])
}

func TestRateLimit_TrustedProxyKeysOnForwardedAddress(t *testing.T) {
	r := api.NewRouter(api.Options{
		Sessions:   sessions,
		Cookie:     api.CookieConfig{Name: cookieName},
		Limiter:    rl.New(1, 2, time.Minute),
		TrustProxy: true,
	})

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.RemoteAddr = "198.51.100.1:80"
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, send("10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}
