package http

import (
	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/http/handlers"
	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/order"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"go.uber.org/zap"
)

func SetCatalogRepo(r repo.CatalogRepository) {
	handlers.SetCatalogRepo(r)
}

func SetCartService(s *cart.Service) {
	handlers.SetCartService(s)
}

func SetOrderService(s *order.Service) {
	handlers.SetOrderService(s)
}

func SetSEOGenerator(g *seo.Generator) {
	handlers.SetSEOGenerator(g)
}

func SetRenderer(r *views.Renderer) {
	handlers.SetRenderer(r)
}

func SetStoreInfo(b models.Business, l []models.Location) {
	handlers.SetStoreInfo(b, l)
}

func SetLogger(l *zap.Logger) {
	handlers.SetLogger(l)
}
