package views

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/catalog"
	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractJSONLD(t *testing.T, html string) map[string]any {
	t.Helper()
	const open = `<script type="application/ld+json">`
	start := strings.Index(html, open)
	require.NotEqual(t, -1, start, "no JSON-LD script")
	rest := html[start+len(open):]
	end := strings.Index(rest, "</script>")
	require.NotEqual(t, -1, end)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &doc))
	return doc
}

func TestRender_ProductDetail(t *testing.T) {
	r := MustNew()
	c := catalog.MustLoad()
	g := seo.NewGenerator(seo.DefaultSite(), repo.NewInMemoryCatalogRepository(c))

	data, err := g.ProductSEOData("auto-1")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, ProductDetail, Page{
		Site:       g.Site(),
		SEO:        data,
		Robots:     seo.RobotsDirectives(),
		Categories: c.Categories,
		Locations:  c.Locations,
		CartCount:  3,
		Data:       ProductData{Product: c.Products[0]},
	})
	require.NoError(t, err)
	html := buf.String()

	assert.Contains(t, html, "<title>Acondicionador de metales - Pinturas Diamante</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://pinturasdiamante.com/product/auto-1">`)
	assert.Contains(t, html, `<meta property="og:type" content="product">`)
	assert.Contains(t, html, `<meta name="twitter:card" content="summary_large_image">`)
	assert.Contains(t, html, "Carrito (3)")
	assert.Contains(t, html, QuotePriceLabel)
	assert.Contains(t, html, `name="product_id" value="auto-1"`)

	doc := extractJSONLD(t, html)
	assert.Equal(t, seo.SchemaContext, doc["@context"])
	assert.Len(t, doc["@graph"], 4)
}

func TestRender_NotFoundAndCart(t *testing.T) {
	r := MustNew()
	site := seo.DefaultSite()

	var buf bytes.Buffer
	err := r.Render(&buf, NotFound, Page{Site: site, Data: NotFoundData{Message: "Contenido no disponible."}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Contenido no disponible.")
	assert.NotContains(t, buf.String(), "application/ld+json")

	buf.Reset()
	err = r.Render(&buf, Cart, Page{Site: site, Data: CartData{Cart: cart.Cart{}}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Tu carrito está vacío.")

	price := 99.5
	buf.Reset()
	err = r.Render(&buf, Cart, Page{Site: site, Data: CartData{Cart: cart.Cart{
		Items:      []models.CartItem{{Product: models.Product{ID: "p1", Name: "Diamaluxe", Price: &price}, Quantity: 2}},
		TotalItems: 2,
		TotalPrice: 199,
	}}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "$99.50")
	assert.Contains(t, buf.String(), "Total: $199.00")
	assert.Contains(t, buf.String(), "Confirmar Pedido")
}

func TestRender_EscapesUserInput(t *testing.T) {
	r := MustNew()
	var buf bytes.Buffer
	err := r.Render(&buf, Catalog, Page{
		Site:  seo.DefaultSite(),
		Query: `<script>alert(1)</script>`,
		Data:  CatalogData{},
	})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "No se encontraron productos.")
}

func TestRender_StaticProduct(t *testing.T) {
	r := MustNew()
	g := seo.NewGenerator(seo.DefaultSite(), repo.NewInMemoryCatalogRepository(catalog.MustLoad()))
	data, err := g.ProductSEOData("mad-5")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, StaticProduct, StaticPage{
		Site:    g.Site(),
		SEO:     data,
		Robots:  g.Site().RobotsMeta("mad-5"),
		LiveURL: data.Canonical,
	})
	require.NoError(t, err)
	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<meta name="googlebot"`)
	assert.NotContains(t, html, `<meta name="canonical"`)
	extractJSONLD(t, html)
}

func TestRender_UnknownPage(t *testing.T) {
	err := MustNew().Render(&bytes.Buffer{}, "missing", nil)
	assert.ErrorContains(t, err, "unknown page")
}

func TestFormatPrice(t *testing.T) {
	price := 1250.0
	assert.Equal(t, "$1250.00", FormatPrice(models.Product{Price: &price}))
	assert.Equal(t, "Desde $300", FormatPrice(models.Product{PriceLabel: "Desde $300"}))
	assert.Equal(t, QuotePriceLabel, FormatPrice(models.Product{}))
}
