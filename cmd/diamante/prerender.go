package main

import (
	"fmt"

	"github.com/pinturas-diamante/catalog-site/internal/prerender"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"github.com/spf13/cobra"
)

func newPrerenderCmd(root *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "prerender",
		Short: "Write static SEO pages for crawlers",
		Long: `Generate a static HTML page per product and per category, together with
sitemap.xml, robots.txt and schema-index.json.

Examples:
  diamante prerender
  diamante prerender --out dist/seo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			renderer, err := views.New()
			if err != nil {
				return err
			}

			report, err := prerender.New(a.seo, a.catalog, renderer, log.Named("prerender")).Run(cmd.Context(), outDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Productos: %d/%d\n", report.ProductsWritten, report.ProductsTotal)
			fmt.Fprintf(out, "Categorías: %d/%d\n", report.CategoriesWritten, report.CategoriesTotal)
			fmt.Fprintf(out, "Archivos en %s: %d\n", report.OutDir, len(report.Files))
			for _, e := range report.Errors {
				fmt.Fprintf(out, "  error: %s\n", e)
			}
			if report.Failed() > 0 {
				return fmt.Errorf("%d files failed", report.Failed())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "prerendered", "output directory")
	return cmd
}
