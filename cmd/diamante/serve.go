package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinturas-diamante/catalog-site/internal/auth"
	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/config"
	api "github.com/pinturas-diamante/catalog-site/internal/http"
	rl "github.com/pinturas-diamante/catalog-site/internal/http/rate_limiter"
	"github.com/pinturas-diamante/catalog-site/internal/order"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	visitorTTL             = 3 * time.Minute
	visitorCleanupInterval = time.Minute
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the web server",
		Long: `Start the catalog site: HTML pages, the JSON API under /api, sitemap.xml,
robots.txt and the Swagger UI under /swagger/.

Examples:
  diamante serve
  diamante serve --port 3000
  DIAMANTE_STORAGE_CART_BACKEND=redis diamante serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, log)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Session.Secret == config.DevSessionSecret {
		log.Warn("using the development session secret, set DIAMANTE_SESSION_SECRET in production")
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	carts, receipts, err := a.sessionStores(ctx)
	if err != nil {
		return err
	}

	renderer, err := views.New()
	if err != nil {
		return err
	}

	cartSvc := cart.NewService(carts, a.catalog, log.Named("cart"))
	orderSvc := order.NewService(cartSvc, receipts, cfg.Order.Latency, log.Named("order"))

	api.SetCatalogRepo(a.catalog)
	api.SetCartService(cartSvc)
	api.SetOrderService(orderSvc)
	api.SetSEOGenerator(a.seo)
	api.SetRenderer(renderer)
	api.SetStoreInfo(a.base.Business, a.base.Locations)
	api.SetLogger(log)

	limiter := rl.New(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, visitorTTL)
	go limiter.StartVisitorCleanupLoop(ctx, visitorCleanupInterval)

	router := api.NewRouter(api.Options{
		Sessions: auth.NewSessions(cfg.Session.Secret, cfg.Session.TTL),
		Cookie: api.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		},
		Limiter:    limiter,
		Logger:     log.Named("http"),
		TrustProxy: cfg.Server.TrustProxy,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
