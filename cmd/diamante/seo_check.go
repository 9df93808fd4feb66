package main

import (
	"fmt"
	"io"

	"github.com/pinturas-diamante/catalog-site/internal/prerender"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/spf13/cobra"
)

type checkResult struct {
	page   string
	issues []seo.Issue
	err    error
}

func newSEOCheckCmd(root *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seo-check",
		Short: "Validate the SEO metadata of every product and category",
		Long: `Run the SEO validation for every product and category page and print the
warnings found. The command fails when a page is missing its Open Graph image
or structured data, or when --dir is given and the prerendered output there
is incomplete.

Examples:
  diamante seo-check
  diamante seo-check --dir prerendered`,
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

			results, err := checkCatalog(a)
			if err != nil {
				return err
			}
			critical := printResults(cmd.OutOrStdout(), results)

			if dir != "" {
				products, _ := a.catalog.Products()
				categories, _ := a.catalog.Categories()
				var pIDs, cIDs []string
				for _, p := range products {
					pIDs = append(pIDs, p.ID)
				}
				for _, c := range categories {
					cIDs = append(cIDs, c.ID)
				}

				problems := prerender.Verify(dir, pIDs, cIDs)
				for _, p := range problems {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", dir, p)
				}
				critical += len(problems)
			}

			if critical > 0 {
				return fmt.Errorf("%d critical SEO problems", critical)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "also verify the prerendered output in this directory")
	return cmd
}

func checkCatalog(a *app) ([]checkResult, error) {
	products, err := a.catalog.Products()
	if err != nil {
		return nil, err
	}
	categories, err := a.catalog.Categories()
	if err != nil {
		return nil, err
	}

	var results []checkResult
	for _, p := range products {
		data, err := a.seo.ProductSEOData(p.ID)
		results = append(results, checkResult{page: seo.ProductPath(p.ID), issues: validate(data, err), err: err})
	}
	for _, c := range categories {
		data, err := a.seo.CategorySEOData(c.ID)
		results = append(results, checkResult{page: seo.CategoryPath(c.ID), issues: validate(data, err), err: err})
	}
	return results, nil
}

func validate(data seo.PageData, err error) []seo.Issue {
	if err != nil {
		return nil
	}
	return seo.Validate(data)
}

// printResults writes the report and returns the number of pages with
// critical problems.
func printResults(w io.Writer, results []checkResult) int {
	critical, warnings := 0, 0
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "%s\n  critical: %v\n", r.page, r.err)
			critical++
			continue
		}
		if len(r.issues) == 0 {
			continue
		}
		fmt.Fprintln(w, r.page)
		for _, i := range r.issues {
			fmt.Fprintf(w, "  %s: %s\n", i.Severity, i.Message)
			if i.Severity == seo.SeverityWarning {
				warnings++
			}
		}
		if seo.HasCritical(r.issues) {
			critical++
		}
	}
	fmt.Fprintf(w, "%d páginas revisadas, %d advertencias, %d con errores críticos\n", len(results), warnings, critical)
	return critical
}
