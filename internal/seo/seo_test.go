package seo

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/pinturas-diamante/catalog-site/internal/catalog"
	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(DefaultSite(), repo.NewInMemoryCatalogRepository(catalog.MustLoad()))
}

func TestProductSEOData(t *testing.T) {
	g := newGenerator(t)

	data, err := g.ProductSEOData("auto-1")
	require.NoError(t, err)

	assert.Equal(t, "https://pinturasdiamante.com/product/auto-1", data.Canonical)
	assert.Equal(t, "Acondicionador de metales - Pinturas Diamante", data.Title)
	assert.True(t, strings.HasPrefix(data.Description, "Producto diseñado para eliminar óxido"))
	assert.Equal(t, "https://pinturasdiamante.com/img/catalog/LOGO-WEB-DIAMANTE-PNG.png", data.OGImage)
	assert.Equal(t, "Complementos, Acondicionador de metales, oaxaca, pinturas diamante", data.Keywords)

	require.NotNil(t, data.StructuredData)
	require.Len(t, data.StructuredData.Graph, 4)
	assert.IsType(t, Organization{}, data.StructuredData.Graph[0])
	assert.IsType(t, Product{}, data.StructuredData.Graph[1])
	assert.IsType(t, WebPage{}, data.StructuredData.Graph[2])
	assert.IsType(t, BreadcrumbList{}, data.StructuredData.Graph[3])

	assert.Equal(t, "product", data.OpenGraphTags.Get("og:type"))
	assert.Equal(t, "es_MX", data.OpenGraphTags.Get("og:locale"))
	assert.Equal(t, data.Title, data.TwitterCard.Get("twitter:title"))
	assert.Equal(t, "summary_large_image", data.TwitterCard.Get("twitter:card"))
}

func TestProductSEOData_GraphNodesHaveNoContext(t *testing.T) {
	g := newGenerator(t)
	data, err := g.ProductSEOData("mad-5")
	require.NoError(t, err)

	raw, err := json.Marshal(data.StructuredData)
	require.NoError(t, err)

	var doc struct {
		Context string           `json:"@context"`
		Graph   []map[string]any `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, SchemaContext, doc.Context)
	for _, node := range doc.Graph {
		assert.NotContains(t, node, "@context")
		assert.Contains(t, node, "@type")
	}
}

func TestProductSEOData_UsesOverrides(t *testing.T) {
	price := 349.9
	cat := &catalog.Catalog{
		Categories:    []models.Category{{ID: "c", Name: "CAT", Description: "d"}},
		SubCategories: []models.SubCategory{{ID: "s", CategoryID: "c", Name: "Sub"}},
		Products: []models.Product{{
			ID: "p", CategoryID: "c", SubCategoryID: "s", Name: "Name", Tag: "Tag", Description: "plain",
			Price: &price, Image: "/img/p.jpg", OGImage: "https://cdn.example.com/og.jpg",
			OGTitle: "Custom title", OGDescription: "Custom description",
		}},
	}
	g := NewGenerator(DefaultSite(), repo.NewInMemoryCatalogRepository(cat))

	data, err := g.ProductSEOData("p")
	require.NoError(t, err)
	assert.Equal(t, "Custom title", data.Title)
	assert.Equal(t, "Custom description", data.Description)
	assert.Equal(t, "https://cdn.example.com/og.jpg", data.OGImage)

	product := data.StructuredData.Graph[1].(Product)
	assert.Equal(t, "349.90", product.Offers.Price)
	assert.Equal(t, "MXN", product.Offers.PriceCurrency)
	assert.Equal(t, InStock, product.Offers.Availability)
}

func TestProductSEOData_Errors(t *testing.T) {
	g := newGenerator(t)
	_, err := g.ProductSEOData("missing")
	assert.ErrorIs(t, err, repo.ErrProductNotFound)

	_, err = g.CategorySEOData("missing")
	assert.ErrorIs(t, err, repo.ErrCategoryNotFound)
}

func TestBreadcrumbSchema(t *testing.T) {
	s := DefaultSite()
	p := models.Product{ID: "dec-9", Name: "Imperdiamante Fibratado"}
	c := models.Category{ID: "decorativo", Name: "DECORATIVO"}
	sub := models.SubCategory{ID: "imper-deco", CategoryID: "decorativo", Name: "Impermeabilizantes"}

	list := s.BreadcrumbSchema(p, c, sub)
	require.Len(t, list.ItemListElement, 5)

	wantNames := []string{"Inicio", "Catálogo", "DECORATIVO", "Impermeabilizantes", "Imperdiamante Fibratado"}
	for i, item := range list.ItemListElement {
		assert.Equal(t, i+1, item.Position)
		assert.Equal(t, wantNames[i], item.Name)
	}
	assert.Equal(t, "https://pinturasdiamante.com/catalog/decorativo/imper-deco", list.ItemListElement[3].Item)
	assert.Equal(t, "https://pinturasdiamante.com/product/dec-9", list.ItemListElement[4].Item)
}

func TestCategorySEOData(t *testing.T) {
	g := newGenerator(t)
	data, err := g.CategorySEOData("maderas")
	require.NoError(t, err)

	assert.Equal(t, "MADERAS | Pinturas Diamante Oaxaca", data.Title)
	assert.Equal(t, "https://pinturasdiamante.com/catalog/maderas", data.Canonical)
	require.Len(t, data.StructuredData.Graph, 2)
	page := data.StructuredData.Graph[1].(WebPage)
	assert.Equal(t, "CollectionPage", page.Type)
	assert.Equal(t, "website", data.OpenGraphTags.Get("og:type"))
}

func TestLocalBusinessSchema(t *testing.T) {
	lb := DefaultSite().LocalBusinessSchema()
	assert.Equal(t, "LocalBusiness", lb.Type)
	assert.Equal(t, 17.0627, lb.Geo.Latitude)
	require.Len(t, lb.OpeningHoursSpecification, 2)
	assert.Equal(t, "16:30", lb.OpeningHoursSpecification[1].Closes)
}

func TestFAQAndReviewSchema(t *testing.T) {
	faq := FAQSchema([]FAQ{{Question: "¿Hacen envíos?", Answer: "Sí, en Oaxaca."}})
	require.Len(t, faq.MainEntity, 1)
	assert.Equal(t, "Answer", faq.MainEntity[0].AcceptedAnswer.Type)

	review := DefaultSite().ReviewSchema("Diamaluxe", "Ana", 9, "Excelente")
	assert.Equal(t, "5", review.ReviewRating.RatingValue)
	assert.Equal(t, "Reseña de Diamaluxe", review.Name)
}

func TestValidate(t *testing.T) {
	graph := NewGraph(Organization{Type: "Organization"})
	good := PageData{
		Title:          strings.Repeat("t", 45),
		Description:    strings.Repeat("d", 140),
		OGImage:        "https://x/y.jpg",
		StructuredData: &graph,
	}
	assert.Empty(t, Validate(good))

	bad := PageData{Title: "short", Description: strings.Repeat("é", 200)}
	issues := Validate(bad)
	assert.Len(t, issues, 4)
	assert.True(t, HasCritical(issues))

	lengthOnly := good
	lengthOnly.Title = "short"
	assert.False(t, HasCritical(Validate(lengthOnly)))

	tooManyKeywords := good
	tooManyKeywords.Keywords = "a, b, c, d, e, f"
	issues = Validate(tooManyKeywords)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "palabras clave")

	fiveKeywords := good
	fiveKeywords.Keywords = "a, b, c, d, e"
	assert.Empty(t, Validate(fiveKeywords))
}

func TestValidate_CatalogKeywordsStayWithinLimit(t *testing.T) {
	g := newGenerator(t)
	entries, err := g.AllProducts()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.True(t, ValidateKeywords(e.Data.Keywords), e.Product.ID)
	}
	assert.True(t, ValidateKeywords(g.Site().Keywords))
}

func TestSitemap(t *testing.T) {
	g := newGenerator(t)
	now := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	out, err := g.Sitemap(now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))

	var set urlSet
	require.NoError(t, xml.Unmarshal(out, &set))
	assert.Len(t, set.URLs, 3+3+18+46)

	assert.Equal(t, "https://pinturasdiamante.com/", set.URLs[0].Loc)
	assert.Equal(t, "1.0", set.URLs[0].Priority)
	for _, u := range set.URLs {
		assert.Equal(t, "2026-03-14", u.LastMod)
	}

	last := set.URLs[len(set.URLs)-1]
	assert.Equal(t, "https://pinturasdiamante.com/product/dec-14", last.Loc)
	assert.Equal(t, "monthly", last.ChangeFreq)
	assert.Equal(t, "0.70", last.Priority)
}

func TestRobotsTxt(t *testing.T) {
	txt := DefaultSite().RobotsTxt()
	assert.Contains(t, txt, "User-agent: *\nAllow: /\n")
	assert.Contains(t, txt, "Disallow: /*.json$")
	assert.Contains(t, txt, "Crawl-delay: 1")
	assert.Contains(t, txt, "User-agent: MJ12bot\nDisallow: /")
	assert.Contains(t, txt, "User-agent: AhrefsBot\nCrawl-delay: 10")
	assert.Contains(t, txt, "Sitemap: https://pinturasdiamante.com/sitemap.xml")
	assert.Less(t, strings.Index(txt, "AhrefsBot"), strings.Index(txt, "SemrushBot"))
}

func TestSite_ValidateAndURLs(t *testing.T) {
	s := DefaultSite()
	assert.NoError(t, s.Validate())

	s.Domain = "https://example.com/"
	assert.Equal(t, "https://example.com/contact", s.AbsoluteURL("contact"))
	assert.Equal(t, "https://cdn/x.png", s.AbsoluteImageURL("https://cdn/x.png"))
	assert.Equal(t, "https://example.com/img/catalog/LOGO-WEB-DIAMANTE-PNG.png", s.AbsoluteImageURL(""))
	assert.Equal(t, "Contacto | Pinturas Diamante Oaxaca", s.Title("Contacto"))
	assert.Equal(t, "Pinturas Diamante Oaxaca", s.Title(""))

	broken := Site{}
	err := broken.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain")
	assert.Contains(t, err.Error(), "business name")
	assert.Contains(t, err.Error(), "title template")
	assert.Contains(t, err.Error(), "street address")
}

func TestTextHelpers(t *testing.T) {
	assert.True(t, ValidateKeywords("a, b, c, d, e"))
	assert.False(t, ValidateKeywords("a, b, c, d, e, f"))
	assert.True(t, ValidateKeywords("a, , b"))

	assert.Equal(t, "corto", TruncateDescription("corto", 10))
	assert.Equal(t, "Pintura...", TruncateDescription("Pintura vinílica", 8))
	assert.Equal(t, "ñññ...", TruncateDescription("ññññññ", 3))

	assert.Equal(t, "fallback", Value("  ", "fallback"))
	assert.Equal(t, "custom", Value("custom", "fallback"))
}

func TestTags_MarshalJSONKeepsOrder(t *testing.T) {
	raw, err := json.Marshal(Tags{{"b", "1"}, {"a", "2"}})
	require.NoError(t, err)
	assert.Equal(t, `{"b":"1","a":"2"}`, string(raw))
}

func TestSubCategorySEOData(t *testing.T) {
	g := newGenerator(t)

	data, err := g.SubCategorySEOData("decorativo", "imper-deco")
	require.NoError(t, err)
	assert.Equal(t, "https://pinturasdiamante.com/catalog/decorativo/imper-deco", data.Canonical)
	assert.Equal(t, "Impermeabilizantes - DECORATIVO | Pinturas Diamante Oaxaca", data.Title)
	page := data.StructuredData.Graph[1].(WebPage)
	assert.Equal(t, data.Canonical, page.ID)
	assert.Equal(t, "Impermeabilizantes", page.Name)

	_, err = g.SubCategorySEOData("maderas", "imper-deco")
	assert.ErrorIs(t, err, ErrSubCategoryMismatch)
	_, err = g.SubCategorySEOData("decorativo", "missing")
	assert.ErrorIs(t, err, repo.ErrSubCategoryNotFound)
}

func TestPageSEOData(t *testing.T) {
	g := newGenerator(t)
	s := g.Site()

	data := g.PageSEOData(ContactPath, "Contacto", "", s.LocalBusinessSchema())
	assert.Equal(t, "https://pinturasdiamante.com/contact", data.Canonical)
	assert.Equal(t, "Contacto | Pinturas Diamante Oaxaca", data.Title)
	assert.Equal(t, s.DefaultDescription, data.Description)
	require.Len(t, data.StructuredData.Graph, 2)
	lb := data.StructuredData.Graph[1].(LocalBusiness)
	assert.Empty(t, lb.Context)

	home := g.PageSEOData(HomePath, "", "Pinturas para todo proyecto")
	assert.Equal(t, "Pinturas Diamante Oaxaca", home.Title)
	assert.Equal(t, "https://pinturasdiamante.com/", home.Canonical)
	assert.Equal(t, "Pinturas para todo proyecto", home.Description)
}
