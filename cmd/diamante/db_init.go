package main

import (
	"fmt"

	"github.com/pinturas-diamante/catalog-site/internal/catalog"
	"github.com/pinturas-diamante/catalog-site/internal/db"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDBInitCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "db-init",
		Short: "Create the catalog tables and load the bundled catalog into Postgres",
		Long: `Apply the catalog migrations to storage.database_url and upsert the
categories, subcategories and products shipped with the binary. Run it before
serving with storage.catalog_backend set to postgres.

Examples:
  DIAMANTE_STORAGE_DATABASE_URL=postgres://... diamante db-init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cfg.Storage.DatabaseURL == "" {
				return fmt.Errorf("storage.database_url is not set")
			}

			ctx := cmd.Context()
			database, err := db.Connect(ctx, cfg.Storage.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(ctx, database); err != nil {
				return err
			}

			c, err := catalog.Load()
			if err != nil {
				return err
			}
			if err := repo.SeedPostgresCatalog(ctx, database, c); err != nil {
				return err
			}

			log.Info("catalog seeded",
				zap.Int("categories", len(c.Categories)),
				zap.Int("subcategories", len(c.SubCategories)),
				zap.Int("products", len(c.Products)),
			)
			return nil
		},
	}
}
