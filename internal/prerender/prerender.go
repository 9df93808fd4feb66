// Package prerender writes static, crawler friendly copies of the catalog
// pages together with sitemap.xml, robots.txt and a JSON-LD schema index.
package prerender

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SitemapFile     = "sitemap.xml"
	RobotsFile      = "robots.txt"
	SchemaIndexFile = "schema-index.json"
)

func ProductFile(id string) string  { return "product-" + id + ".html" }
func CategoryFile(id string) string { return "category-" + id + ".html" }

// Report summarises a run. Page failures are collected rather than aborting
// the run.
type Report struct {
	OutDir            string    `json:"out_dir"`
	ProductsTotal     int       `json:"products_total"`
	ProductsWritten   int       `json:"products_written"`
	CategoriesTotal   int       `json:"categories_total"`
	CategoriesWritten int       `json:"categories_written"`
	Files             []string  `json:"files"`
	Errors            []string  `json:"errors,omitempty"`
	GeneratedAt       time.Time `json:"generated_at"`
}

func (r Report) Failed() int {
	return len(r.Errors)
}

type SchemaIndex struct {
	Organization     seo.Organization  `json:"organization"`
	LocalBusiness    seo.LocalBusiness `json:"localBusiness"`
	GeneratedAt      time.Time         `json:"generatedAt"`
	ProductCount     int               `json:"productCount"`
	CategoryCount    int               `json:"categoryCount"`
	SubCategoryCount int               `json:"subCategoryCount"`
}

type Prerenderer struct {
	seo         *seo.Generator
	catalog     repo.CatalogRepository
	renderer    *views.Renderer
	log         *zap.Logger
	concurrency int
	now         func() time.Time
}

func New(gen *seo.Generator, catalog repo.CatalogRepository, renderer *views.Renderer, log *zap.Logger) *Prerenderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Prerenderer{
		seo:         gen,
		catalog:     catalog,
		renderer:    renderer,
		log:         log,
		concurrency: 8,
		now:         time.Now,
	}
}

// collector gathers results from the page workers.
type collector struct {
	mu     sync.Mutex
	files  []string
	errors []string
}

func (c *collector) ok(name string) {
	c.mu.Lock()
	c.files = append(c.files, name)
	c.mu.Unlock()
}

func (c *collector) fail(name string, err error) {
	c.mu.Lock()
	c.errors = append(c.errors, fmt.Sprintf("%s: %v", name, err))
	c.mu.Unlock()
}

// Run generates every file into outDir, creating it if needed. It only
// returns an error when the directory cannot be created or ctx is cancelled.
func (p *Prerenderer) Run(ctx context.Context, outDir string) (Report, error) {
	now := p.now().UTC()
	report := Report{OutDir: outDir, GeneratedAt: now}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	products, err := p.catalog.Products()
	if err != nil {
		return report, err
	}
	categories, err := p.catalog.Categories()
	if err != nil {
		return report, err
	}
	report.ProductsTotal = len(products)
	report.CategoriesTotal = len(categories)

	var c collector
	var productsOK, categoriesOK int
	var countMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, prod := range products {
		id := prod.ID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name := ProductFile(id)
			if err := p.writeProduct(filepath.Join(outDir, name), id); err != nil {
				p.log.Warn("product page failed", zap.String("product", id), zap.Error(err))
				c.fail(name, err)
				return nil
			}
			c.ok(name)
			countMu.Lock()
			productsOK++
			countMu.Unlock()
			return nil
		})
	}

	for _, cat := range categories {
		id := cat.ID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name := CategoryFile(id)
			if err := p.writeCategory(filepath.Join(outDir, name), id); err != nil {
				p.log.Warn("category page failed", zap.String("category", id), zap.Error(err))
				c.fail(name, err)
				return nil
			}
			c.ok(name)
			countMu.Lock()
			categoriesOK++
			countMu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		out, err := p.seo.Sitemap(now)
		if err == nil {
			err = os.WriteFile(filepath.Join(outDir, SitemapFile), out, 0o644)
		}
		if err != nil {
			c.fail(SitemapFile, err)
			return nil
		}
		c.ok(SitemapFile)
		return nil
	})

	g.Go(func() error {
		err := os.WriteFile(filepath.Join(outDir, RobotsFile), []byte(p.seo.Site().RobotsTxt()), 0o644)
		if err != nil {
			c.fail(RobotsFile, err)
			return nil
		}
		c.ok(RobotsFile)
		return nil
	})

	g.Go(func() error {
		if err := p.writeSchemaIndex(filepath.Join(outDir, SchemaIndexFile), now, len(products), len(categories)); err != nil {
			c.fail(SchemaIndexFile, err)
			return nil
		}
		c.ok(SchemaIndexFile)
		return nil
	})

	if err := g.Wait(); err != nil {
		return report, err
	}

	sort.Strings(c.files)
	sort.Strings(c.errors)
	report.Files = c.files
	report.Errors = c.errors
	report.ProductsWritten = productsOK
	report.CategoriesWritten = categoriesOK

	p.log.Info("prerender finished",
		zap.String("out_dir", outDir),
		zap.Int("products", productsOK),
		zap.Int("categories", categoriesOK),
		zap.Int("failed", report.Failed()),
	)
	return report, nil
}

func (p *Prerenderer) writeProduct(path, productID string) error {
	data, err := p.seo.ProductSEOData(productID)
	if err != nil {
		return err
	}
	prod, err := p.catalog.ProductByID(productID)
	if err != nil {
		return err
	}
	site := p.seo.Site()
	return p.writePage(path, views.StaticProduct, views.StaticPage{
		Site:    site,
		SEO:     data,
		Robots:  site.RobotsMeta(productID),
		LiveURL: data.Canonical,
		Product: prod,
	})
}

func (p *Prerenderer) writeCategory(path, categoryID string) error {
	data, err := p.seo.CategorySEOData(categoryID)
	if err != nil {
		return err
	}
	cat, err := p.catalog.CategoryByID(categoryID)
	if err != nil {
		return err
	}
	products, _, err := p.catalog.Filter(repo.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return err
	}
	return p.writePage(path, views.StaticCategory, views.StaticPage{
		Site:     p.seo.Site(),
		SEO:      data,
		LiveURL:  data.Canonical,
		Category: cat,
		Products: products,
	})
}

func (p *Prerenderer) writePage(path, page string, data views.StaticPage) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.renderer.Render(f, page, data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func (p *Prerenderer) writeSchemaIndex(path string, now time.Time, products, categories int) error {
	subCount := 0
	cats, err := p.catalog.Categories()
	if err != nil {
		return err
	}
	for _, c := range cats {
		subs, err := p.catalog.SubCategories(c.ID)
		if err != nil {
			return err
		}
		subCount += len(subs)
	}

	site := p.seo.Site()
	index := SchemaIndex{
		Organization:     site.OrganizationSchema(),
		LocalBusiness:    site.LocalBusinessSchema(),
		GeneratedAt:      now,
		ProductCount:     products,
		CategoryCount:    categories,
		SubCategoryCount: subCount,
	}
	out, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
