package seo

import (
	"errors"
	"fmt"

	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
)

// ErrIncompleteCatalog is returned when a product points at a category or
// subcategory the catalog does not have.
var ErrIncompleteCatalog = errors.New("product category data is incomplete")

// ErrSubCategoryMismatch is returned when a subcategory is requested under a
// category it does not belong to.
var ErrSubCategoryMismatch = errors.New("subcategory does not belong to category")

// PageData is the SEO payload of a single page.
type PageData struct {
	Canonical      string          `json:"canonical"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Keywords       string          `json:"keywords,omitempty"`
	OGImage        string          `json:"og_image"`
	StructuredData *Graph          `json:"structured_data"`
	OpenGraphTags  Tags            `json:"open_graph"`
	TwitterCard    Tags            `json:"twitter_card"`
	Breadcrumbs    *BreadcrumbList `json:"breadcrumbs,omitempty"`
}

// Generator combines the site configuration with the catalog.
type Generator struct {
	site    Site
	catalog repo.CatalogRepository
}

func NewGenerator(site Site, catalog repo.CatalogRepository) *Generator {
	return &Generator{site: site, catalog: catalog}
}

func (g *Generator) Site() Site {
	return g.site
}

// ProductSEOData builds the complete SEO payload of a product page.
func (g *Generator) ProductSEOData(productID string) (PageData, error) {
	p, err := g.catalog.ProductByID(productID)
	if err != nil {
		return PageData{}, err
	}
	c, err := g.catalog.CategoryByID(p.CategoryID)
	if err != nil {
		return PageData{}, fmt.Errorf("%w: %s: %v", ErrIncompleteCatalog, productID, err)
	}
	sub, err := g.catalog.SubCategoryByID(p.SubCategoryID)
	if err != nil {
		return PageData{}, fmt.Errorf("%w: %s: %v", ErrIncompleteCatalog, productID, err)
	}
	return g.productData(p, c, sub), nil
}

func (g *Generator) productData(p models.Product, c models.Category, sub models.SubCategory) PageData {
	s := g.site
	breadcrumbs := s.BreadcrumbSchema(p, c, sub)
	graph := NewGraph(
		graphNode(s.OrganizationSchema()),
		graphNode(s.ProductSchema(p)),
		graphNode(s.WebPageSchema(p)),
		graphNode(breadcrumbs),
	)
	return PageData{
		Canonical:      s.AbsoluteURL(ProductPath(p.ID)),
		Title:          s.ProductTitle(p),
		Description:    ProductDescription(p),
		Keywords:       ProductKeywords(p, s.Location.Locality, s.Business.Name),
		OGImage:        s.ProductImage(p),
		StructuredData: &graph,
		OpenGraphTags:  s.OpenGraphTags(p),
		TwitterCard:    s.TwitterCardTags(p),
		Breadcrumbs:    &breadcrumbs,
	}
}

// CategorySEOData builds the SEO payload of a category page.
func (g *Generator) CategorySEOData(categoryID string) (PageData, error) {
	c, err := g.catalog.CategoryByID(categoryID)
	if err != nil {
		return PageData{}, err
	}
	s := g.site
	title := s.Title(c.Name)
	image := s.AbsoluteImageURL(Value(c.OGImage, c.Image))
	graph := NewGraph(
		graphNode(s.OrganizationSchema()),
		s.CollectionPageSchema(c),
	)
	return PageData{
		Canonical:      s.AbsoluteURL(CategoryPath(c.ID)),
		Title:          title,
		Description:    c.Description,
		OGImage:        image,
		StructuredData: &graph,
		OpenGraphTags:  s.PageOpenGraphTags(CategoryPath(c.ID), title, c.Description, Value(c.OGImage, c.Image)),
		TwitterCard:    s.PageTwitterCardTags(title, c.Description, Value(c.OGImage, c.Image)),
	}, nil
}

// ProductEntry pairs a product with its SEO payload.
type ProductEntry struct {
	Product models.Product
	Data    PageData
}

// AllProducts returns the SEO payload of every product whose category data is
// complete. Products with dangling references are skipped.
func (g *Generator) AllProducts() ([]ProductEntry, error) {
	products, err := g.catalog.Products()
	if err != nil {
		return nil, err
	}
	entries := make([]ProductEntry, 0, len(products))
	for _, p := range products {
		data, err := g.ProductSEOData(p.ID)
		if err != nil {
			continue
		}
		entries = append(entries, ProductEntry{Product: p, Data: data})
	}
	return entries, nil
}

// SubCategorySEOData builds the SEO payload of a product list page.
func (g *Generator) SubCategorySEOData(categoryID, subCategoryID string) (PageData, error) {
	c, err := g.catalog.CategoryByID(categoryID)
	if err != nil {
		return PageData{}, err
	}
	sub, err := g.catalog.SubCategoryByID(subCategoryID)
	if err != nil {
		return PageData{}, err
	}
	if sub.CategoryID != c.ID {
		return PageData{}, ErrSubCategoryMismatch
	}

	s := g.site
	path := SubCategoryPath(c.ID, sub.ID)
	title := s.Title(sub.Name + " - " + c.Name)
	description := Value(sub.Description, c.Description)
	image := Value(c.OGImage, c.Image)

	page := s.CollectionPageSchema(c)
	page.ID = s.AbsoluteURL(path)
	page.URL = page.ID
	page.Name = sub.Name
	page.Description = description

	graph := NewGraph(graphNode(s.OrganizationSchema()), page)
	return PageData{
		Canonical:      s.AbsoluteURL(path),
		Title:          title,
		Description:    description,
		OGImage:        s.AbsoluteImageURL(image),
		StructuredData: &graph,
		OpenGraphTags:  s.PageOpenGraphTags(path, title, description, image),
		TwitterCard:    s.PageTwitterCardTags(title, description, image),
	}, nil
}

// PageSEOData builds the payload of a static page. An empty page name uses the
// site's default title; extra nodes are appended to the Organization node.
func (g *Generator) PageSEOData(path, page, description string, nodes ...any) PageData {
	s := g.site
	title := s.Title(page)
	description = Value(description, s.DefaultDescription)

	all := []any{graphNode(s.OrganizationSchema())}
	for _, n := range nodes {
		all = append(all, graphNode(n))
	}
	graph := NewGraph(all...)
	return PageData{
		Canonical:      s.AbsoluteURL(path),
		Title:          title,
		Description:    description,
		Keywords:       s.Keywords,
		OGImage:        s.AbsoluteImageURL(s.DefaultImage),
		StructuredData: &graph,
		OpenGraphTags:  s.PageOpenGraphTags(path, title, description, s.DefaultImage),
		TwitterCard:    s.PageTwitterCardTags(title, description, s.DefaultImage),
	}
}
