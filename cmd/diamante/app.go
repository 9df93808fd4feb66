package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinturas-diamante/catalog-site/internal/catalog"
	"github.com/pinturas-diamante/catalog-site/internal/config"
	"github.com/pinturas-diamante/catalog-site/internal/db"
	"github.com/pinturas-diamante/catalog-site/internal/redissvc"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"go.uber.org/zap"
)

// app holds the dependencies shared by the commands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	base    *catalog.Catalog
	catalog repo.CatalogRepository
	seo     *seo.Generator
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	base, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a := &app{cfg: cfg, log: log, base: base}

	switch cfg.Storage.CatalogBackend {
	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)

		r, err := repo.NewPostgresCatalogRepository(ctx, database, base)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.catalog = r
	default:
		a.catalog = repo.NewInMemoryCatalogRepository(base)
	}

	a.seo = seo.NewGenerator(cfg.Site, a.catalog)

	products, _ := a.catalog.Products()
	categories, _ := a.catalog.Categories()
	log.Info("catalog loaded",
		zap.String("backend", cfg.Storage.CatalogBackend),
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
	)
	return a, nil
}

// sessionStores builds the configured cart and receipt stores. Both live in
// Redis when the cart backend is redis.
func (a *app) sessionStores(ctx context.Context) (repo.CartRepository, repo.ReceiptRepository, error) {
	if a.cfg.Storage.CartBackend != config.BackendRedis {
		return repo.NewInMemoryCartRepository(), repo.NewInMemoryReceiptRepository(a.cfg.Storage.ReceiptTTL), nil
	}

	rs, err := redissvc.Connect(ctx, redissvc.Options{
		Addr:     a.cfg.Storage.RedisAddr,
		Password: a.cfg.Storage.RedisPassword,
		DB:       a.cfg.Storage.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, rs.Close)
	return repo.NewRedisCartRepository(rs.Rdb(), a.cfg.Storage.CartTTL),
		repo.NewRedisReceiptRepository(rs.Rdb(), a.cfg.Storage.ReceiptTTL), nil
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
