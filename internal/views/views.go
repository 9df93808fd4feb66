// Package views renders the storefront pages with html/template. Templates are
// embedded in the binary; every page is parsed together with the shared
// layout so pages can override the "content" block independently.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/order"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	About         = "about"
	Contact       = "contact"
	Catalog       = "catalog"
	SubCategories = "subcategories"
	ProductList   = "products"
	ProductDetail = "product"
	Cart          = "cart"
	NotFound      = "notfound"

	StaticProduct  = "static_product"
	StaticCategory = "static_category"
)

var layoutPages = []string{About, Contact, Catalog, SubCategories, ProductList, ProductDetail, Cart, NotFound}

var standalonePages = []string{StaticProduct, StaticCategory}

// QuotePriceLabel is shown for products sold on quotation.
const QuotePriceLabel = "Precio a Cotizar"

// Page is the data every layout page receives.
type Page struct {
	Site       seo.Site
	SEO        seo.PageData
	Robots     string
	Categories []models.Category
	Locations  []models.Location
	CartCount  int
	Query      string
	Notice     string
	Data       any
}

type AboutData struct {
	Business models.Business
}

type CatalogData struct {
	Results []models.Product
}

type SubCategoriesData struct {
	Category      models.Category
	SubCategories []models.SubCategory
	Results       []models.Product
}

type ProductListData struct {
	Category    models.Category
	SubCategory models.SubCategory
	Products    []models.Product
}

type ProductData struct {
	Product     models.Product
	Category    models.Category
	SubCategory models.SubCategory
}

type CartData struct {
	Cart    cart.Cart
	Receipt *order.Receipt
}

type NotFoundData struct {
	Message string
}

// StaticPage is the data of the prerendered standalone pages.
type StaticPage struct {
	Site     seo.Site
	SEO      seo.PageData
	Robots   seo.Tags
	LiveURL  string
	Product  models.Product
	Category models.Category
	Products []models.Product
}

type Renderer struct {
	pages map[string]*template.Template
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"price":           FormatPrice,
		"productPath":     seo.ProductPath,
		"categoryPath":    seo.CategoryPath,
		"subCategoryPath": seo.SubCategoryPath,
		"lower":           strings.ToLower,
	}
}

// New parses every embedded page.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, name := range layoutPages {
		t, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	for _, name := range standalonePages {
		t, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes a page into w. Output is buffered so a failing template
// never leaves a half written response.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	entry := "layout"
	if t.Lookup(entry) == nil {
		entry = name
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, entry, data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// FormatPrice renders a product price in pesos, or its price label.
func FormatPrice(p models.Product) string {
	if p.Price == nil {
		if p.PriceLabel != "" {
			return p.PriceLabel
		}
		return QuotePriceLabel
	}
	return "$" + strconv.FormatFloat(*p.Price, 'f', 2, 64)
}
