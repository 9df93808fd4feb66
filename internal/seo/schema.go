package seo

import (
	"strconv"

	"github.com/pinturas-diamante/catalog-site/internal/models"
)

const (
	SchemaContext = "https://schema.org"
	InStock       = "https://schema.org/InStock"
)

// Graph is a JSON-LD document holding several linked nodes.
type Graph struct {
	Context string `json:"@context"`
	Graph   []any  `json:"@graph"`
}

func NewGraph(nodes ...any) Graph {
	return Graph{Context: SchemaContext, Graph: nodes}
}

type Ref struct {
	ID   string `json:"@id"`
	Type string `json:"@type,omitempty"`
}

type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

type ContactPoint struct {
	Type              string   `json:"@type"`
	Telephone         string   `json:"telephone"`
	ContactType       string   `json:"contactType"`
	AreaServed        string   `json:"areaServed"`
	AvailableLanguage []string `json:"availableLanguage,omitempty"`
}

type Organization struct {
	Context      string         `json:"@context,omitempty"`
	Type         string         `json:"@type"`
	ID           string         `json:"@id,omitempty"`
	Name         string         `json:"name"`
	URL          string         `json:"url,omitempty"`
	Logo         string         `json:"logo,omitempty"`
	Image        string         `json:"image,omitempty"`
	Description  string         `json:"description,omitempty"`
	SameAs       []string       `json:"sameAs,omitempty"`
	ContactPoint *ContactPoint  `json:"contactPoint,omitempty"`
	Address      *PostalAddress `json:"address,omitempty"`
}

type GeoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OpeningHoursSpecification struct {
	Type      string   `json:"@type"`
	DayOfWeek []string `json:"dayOfWeek"`
	Opens     string   `json:"opens"`
	Closes    string   `json:"closes"`
}

type LocalBusiness struct {
	Context                   string                      `json:"@context,omitempty"`
	Type                      string                      `json:"@type"`
	ID                        string                      `json:"@id"`
	Name                      string                      `json:"name"`
	Address                   PostalAddress               `json:"address"`
	Telephone                 string                      `json:"telephone"`
	Email                     string                      `json:"email,omitempty"`
	Image                     string                      `json:"image"`
	URL                       string                      `json:"url"`
	PriceRange                string                      `json:"priceRange"`
	OpeningHoursSpecification []OpeningHoursSpecification `json:"openingHoursSpecification"`
	Geo                       GeoCoordinates              `json:"geo"`
}

type Brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Offer struct {
	Type          string        `json:"@type"`
	URL           string        `json:"url"`
	Price         string        `json:"price,omitempty"`
	PriceCurrency string        `json:"priceCurrency"`
	Availability  string        `json:"availability"`
	Seller        *Organization `json:"seller,omitempty"`
}

type Product struct {
	Context      string        `json:"@context,omitempty"`
	Type         string        `json:"@type"`
	ID           string        `json:"@id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Image        string        `json:"image"`
	SKU          string        `json:"sku"`
	Brand        Brand         `json:"brand"`
	Manufacturer *Organization `json:"manufacturer,omitempty"`
	Category     string        `json:"category"`
	URL          string        `json:"url"`
	Offers       Offer         `json:"offers"`
}

type WebPage struct {
	Context     string `json:"@context,omitempty"`
	Type        string `json:"@type"`
	ID          string `json:"@id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image,omitempty"`
	MainEntity  *Ref   `json:"mainEntity,omitempty"`
	IsPartOf    *Ref   `json:"isPartOf,omitempty"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context,omitempty"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Rating struct {
	Type        string `json:"@type"`
	RatingValue string `json:"ratingValue"`
	BestRating  string `json:"bestRating"`
	WorstRating string `json:"worstRating"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Review struct {
	Context      string       `json:"@context"`
	Type         string       `json:"@type"`
	ID           string       `json:"@id"`
	ReviewRating Rating       `json:"reviewRating"`
	Name         string       `json:"name"`
	Text         string       `json:"text"`
	ReviewAspect string       `json:"reviewAspect"`
	Author       Person       `json:"author"`
	Publisher    Organization `json:"publisher"`
}

func (s Site) organizationID() string { return s.AbsoluteURL("/#organization") }

func (s Site) postalAddress() PostalAddress {
	return PostalAddress{
		Type:            "PostalAddress",
		StreetAddress:   s.Location.StreetAddress,
		AddressLocality: s.Location.Locality,
		AddressRegion:   s.Location.Region,
		PostalCode:      s.Location.PostalCode,
		AddressCountry:  s.Location.Country,
	}
}

// OrganizationSchema is the root identity node of the business.
func (s Site) OrganizationSchema() Organization {
	logo := s.AbsoluteImageURL(s.Business.Logo)
	addr := s.postalAddress()
	return Organization{
		Context:     SchemaContext,
		Type:        "Organization",
		ID:          s.organizationID(),
		Name:        s.Business.Name,
		URL:         s.Domain,
		Logo:        logo,
		Image:       logo,
		Description: s.Business.Description,
		SameAs:      s.Social.Profiles(),
		ContactPoint: &ContactPoint{
			Type:              "ContactPoint",
			Telephone:         s.Business.Phone,
			ContactType:       "Customer Service",
			AreaServed:        s.Location.Country,
			AvailableLanguage: s.Business.Languages,
		},
		Address: &addr,
	}
}

// LocalBusinessSchema describes the main branch for local search.
func (s Site) LocalBusinessSchema() LocalBusiness {
	hours := make([]OpeningHoursSpecification, 0, len(s.Hours))
	for _, h := range s.Hours {
		hours = append(hours, OpeningHoursSpecification{
			Type:      "OpeningHoursSpecification",
			DayOfWeek: h.Days,
			Opens:     h.Opens,
			Closes:    h.Closes,
		})
	}
	return LocalBusiness{
		Context:                   SchemaContext,
		Type:                      "LocalBusiness",
		ID:                        s.AbsoluteURL("/#local-business"),
		Name:                      s.Business.Name,
		Address:                   s.postalAddress(),
		Telephone:                 s.Business.Phone,
		Email:                     s.Business.Email,
		Image:                     s.AbsoluteImageURL(s.Business.Logo),
		URL:                       s.Domain,
		PriceRange:                s.PriceRange,
		OpeningHoursSpecification: hours,
		Geo: GeoCoordinates{
			Type:      "GeoCoordinates",
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
		},
	}
}

// ProductImage is the absolute image used for a product in every tag family.
func (s Site) ProductImage(p models.Product) string {
	return s.AbsoluteImageURL(Value(p.OGImage, p.Image))
}

// ProductSchema follows the Google product rich result fields.
func (s Site) ProductSchema(p models.Product) Product {
	url := s.AbsoluteURL(ProductPath(p.ID))
	offer := Offer{
		Type:          "Offer",
		URL:           url,
		PriceCurrency: s.Currency,
		Availability:  InStock,
		Seller:        &Organization{Type: "Organization", Name: s.Business.Name},
	}
	if p.Price != nil {
		offer.Price = strconv.FormatFloat(*p.Price, 'f', 2, 64)
	}
	return Product{
		Context:     SchemaContext,
		Type:        "Product",
		ID:          url,
		Name:        p.Name,
		Description: p.Description,
		Image:       s.ProductImage(p),
		SKU:         p.ID,
		Brand:       Brand{Type: "Brand", Name: s.Business.Name},
		Manufacturer: &Organization{
			Type: "Organization",
			Name: s.Business.Name,
			URL:  s.Domain,
		},
		Category: Value(p.Tag, "Pintura"),
		URL:      url,
		Offers:   offer,
	}
}

func (s Site) WebPageSchema(p models.Product) WebPage {
	url := s.AbsoluteURL(ProductPath(p.ID))
	return WebPage{
		Context:     SchemaContext,
		Type:        "WebPage",
		ID:          url + "#webpage",
		Name:        p.Name,
		Description: p.Description,
		URL:         url,
		MainEntity:  &Ref{ID: url, Type: "Product"},
		IsPartOf:    &Ref{ID: s.Domain},
	}
}

// BreadcrumbSchema is Inicio › Catálogo › category › subcategory › product.
func (s Site) BreadcrumbSchema(p models.Product, c models.Category, sub models.SubCategory) BreadcrumbList {
	crumbs := []struct{ name, path string }{
		{"Inicio", HomePath},
		{"Catálogo", CatalogPath},
		{c.Name, CategoryPath(c.ID)},
		{sub.Name, SubCategoryPath(c.ID, sub.ID)},
		{p.Name, ProductPath(p.ID)},
	}
	items := make([]ListItem, len(crumbs))
	for i, crumb := range crumbs {
		items[i] = ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     crumb.name,
			Item:     s.AbsoluteURL(crumb.path),
		}
	}
	return BreadcrumbList{Context: SchemaContext, Type: "BreadcrumbList", ItemListElement: items}
}

func (s Site) CollectionPageSchema(c models.Category) WebPage {
	url := s.AbsoluteURL(CategoryPath(c.ID))
	return WebPage{
		Type:        "CollectionPage",
		ID:          url,
		Name:        c.Name,
		Description: c.Description,
		URL:         url,
		Image:       s.AbsoluteImageURL(Value(c.OGImage, c.Image)),
		IsPartOf:    &Ref{ID: s.Domain},
	}
}

func FAQSchema(faqs []FAQ) FAQPage {
	questions := make([]Question, len(faqs))
	for i, f := range faqs {
		questions[i] = Question{
			Type:           "Question",
			Name:           f.Question,
			AcceptedAnswer: Answer{Type: "Answer", Text: f.Answer},
		}
	}
	return FAQPage{Context: SchemaContext, Type: "FAQPage", MainEntity: questions}
}

// ReviewSchema builds a testimonial. Ratings are clamped to 1..5.
func (s Site) ReviewSchema(productName, author string, rating int, text string) Review {
	rating = max(1, min(5, rating))
	return Review{
		Context: SchemaContext,
		Type:    "Review",
		ID:      s.AbsoluteURL("/#review-" + author),
		ReviewRating: Rating{
			Type:        "Rating",
			RatingValue: strconv.Itoa(rating),
			BestRating:  "5",
			WorstRating: "1",
		},
		Name:         "Reseña de " + productName,
		Text:         text,
		ReviewAspect: "Calidad del Producto",
		Author:       Person{Type: "Person", Name: author},
		Publisher:    Organization{Type: "Organization", Name: s.Business.Name},
	}
}

// graphNode strips the per-node @context before embedding a node in a Graph.
func graphNode(node any) any {
	switch n := node.(type) {
	case Organization:
		n.Context = ""
		return n
	case LocalBusiness:
		n.Context = ""
		return n
	case Product:
		n.Context = ""
		return n
	case WebPage:
		n.Context = ""
		return n
	case BreadcrumbList:
		n.Context = ""
		return n
	}
	return node
}
