package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/pinturas-diamante/catalog-site/docs"
	"github.com/pinturas-diamante/catalog-site/internal/auth"
	"github.com/pinturas-diamante/catalog-site/internal/http/handlers"
	rl "github.com/pinturas-diamante/catalog-site/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Options struct {
	Sessions *auth.Sessions
	Cookie   CookieConfig
	Limiter  *rl.Limiter
	Logger   *zap.Logger
	// TrustProxy takes the client address from X-Forwarded-For and friends.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/sitemap.xml", handlers.SitemapHandler)
	r.Get("/robots.txt", handlers.RobotsHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(RateLimit(opts.Limiter, log))
		}

		r.Get("/categories", handlers.GetCategoriesHandler)
		r.Get("/categories/{id}/subcategories", handlers.GetSubCategoriesHandler)
		r.Get("/products", handlers.FilterProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)

		r.Get("/seo/products/{id}", handlers.GetProductSEOHandler)
		r.Get("/seo/categories/{id}", handlers.GetCategorySEOHandler)
		r.Get("/seo/organization", handlers.GetOrganizationSchemaHandler)
		r.Get("/seo/local-business", handlers.GetLocalBusinessSchemaHandler)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(opts.Sessions, opts.Cookie, log))

			r.Get("/cart", handlers.GetCartHandler)
			r.Delete("/cart", handlers.ClearCartHandler)
			r.Post("/cart/items", handlers.AddCartItemHandler)
			r.Put("/cart/items/{id}", handlers.UpdateCartItemHandler)
			r.Delete("/cart/items/{id}", handlers.RemoveCartItemHandler)
			r.Post("/orders", handlers.PlaceOrderHandler)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(opts.Sessions, opts.Cookie, log))

		r.Get("/", handlers.AboutPageHandler)
		r.Get("/contact", handlers.ContactPageHandler)
		r.Get("/catalog", handlers.CatalogPageHandler)
		r.Get("/catalog/{categoryId}", handlers.SubCategoriesPageHandler)
		r.Get("/catalog/{categoryId}/{subCategoryId}", handlers.ProductListPageHandler)
		r.Get("/product/{productId}", handlers.ProductDetailPageHandler)
		r.Get("/cart", handlers.CartPageHandler)

		r.Post("/cart/add", handlers.AddToCartFormHandler)
		r.Post("/cart/update", handlers.UpdateCartFormHandler)
		r.Post("/cart/remove", handlers.RemoveFromCartFormHandler)
		r.Post("/cart/clear", handlers.ClearCartFormHandler)
		r.Post("/cart/checkout", handlers.CheckoutFormHandler)
	})

	r.NotFound(handlers.NotFoundRedirectHandler)
	return r
}
