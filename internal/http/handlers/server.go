package handlers

import (
	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/order"
	repo "github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"go.uber.org/zap"
)

var (
	catalogRepo  repo.CatalogRepository
	cartService  *cart.Service
	orderService *order.Service
	seoGen       *seo.Generator
	renderer     *views.Renderer

	business  models.Business
	locations []models.Location

	logger = zap.NewNop()
)

func SetCatalogRepo(r repo.CatalogRepository) {
	catalogRepo = r
}

func SetCartService(s *cart.Service) {
	cartService = s
}

func SetOrderService(s *order.Service) {
	orderService = s
}

func SetSEOGenerator(g *seo.Generator) {
	seoGen = g
}

func SetRenderer(r *views.Renderer) {
	renderer = r
}

// SetStoreInfo sets the company details and branches shown on every page.
func SetStoreInfo(b models.Business, l []models.Location) {
	business = b
	locations = l
}

func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
