// Package seo builds the search-engine metadata of the site: schema.org JSON-LD
// documents, Open Graph and Twitter card tags, sitemap.xml and robots.txt.
//
// Every builder is a pure function of a Site and catalog data, so the same
// output is served live by the HTTP handlers and written to disk by the
// prerender command.
package seo

import (
	"errors"
	"strings"
)

type Business struct {
	Name           string   `mapstructure:"name" json:"name"`
	ShortName      string   `mapstructure:"short_name" json:"short_name"`
	Description    string   `mapstructure:"description" json:"description"`
	Logo           string   `mapstructure:"logo" json:"logo"`
	Email          string   `mapstructure:"email" json:"email"`
	Phone          string   `mapstructure:"phone" json:"phone"`
	AlternatePhone string   `mapstructure:"alternate_phone" json:"alternate_phone"`
	Languages      []string `mapstructure:"languages" json:"languages"`
}

type Address struct {
	Name          string  `mapstructure:"name" json:"name"`
	StreetAddress string  `mapstructure:"street_address" json:"street_address"`
	Locality      string  `mapstructure:"locality" json:"locality"`
	Region        string  `mapstructure:"region" json:"region"`
	PostalCode    string  `mapstructure:"postal_code" json:"postal_code"`
	Country       string  `mapstructure:"country" json:"country"`
	Latitude      float64 `mapstructure:"latitude" json:"latitude"`
	Longitude     float64 `mapstructure:"longitude" json:"longitude"`
}

type Social struct {
	Facebook  string `mapstructure:"facebook" json:"facebook"`
	Instagram string `mapstructure:"instagram" json:"instagram"`
	LinkedIn  string `mapstructure:"linkedin" json:"linkedin"`
	YouTube   string `mapstructure:"youtube" json:"youtube"`
	Twitter   string `mapstructure:"twitter" json:"twitter"`
}

// Profiles lists the social profile URLs used in sameAs.
func (s Social) Profiles() []string {
	var out []string
	for _, u := range []string{s.Facebook, s.Instagram, s.LinkedIn, s.YouTube} {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

type OpeningHours struct {
	Days   []string `mapstructure:"days" json:"days"`
	Opens  string   `mapstructure:"opens" json:"opens"`
	Closes string   `mapstructure:"closes" json:"closes"`
}

type Robots struct {
	CrawlDelay    int            `mapstructure:"crawl_delay" json:"crawl_delay"`
	Disallow      []string       `mapstructure:"disallow" json:"disallow"`
	BlockedAgents []string       `mapstructure:"blocked_agents" json:"blocked_agents"`
	DelayedAgents map[string]int `mapstructure:"delayed_agents" json:"delayed_agents"`
}

// Site is the SEO configuration of the storefront.
type Site struct {
	Domain             string         `mapstructure:"domain" json:"domain"`
	SiteName           string         `mapstructure:"site_name" json:"site_name"`
	TitleTemplate      string         `mapstructure:"title_template" json:"title_template"`
	DefaultTitle       string         `mapstructure:"default_title" json:"default_title"`
	DefaultDescription string         `mapstructure:"default_description" json:"default_description"`
	DefaultImage       string         `mapstructure:"default_image" json:"default_image"`
	Keywords           string         `mapstructure:"keywords" json:"keywords"`
	Language           string         `mapstructure:"language" json:"language"`
	Locale             string         `mapstructure:"locale" json:"locale"`
	Currency           string         `mapstructure:"currency" json:"currency"`
	PriceRange         string         `mapstructure:"price_range" json:"price_range"`
	Business           Business       `mapstructure:"business" json:"business"`
	Location           Address        `mapstructure:"location" json:"location"`
	Social             Social         `mapstructure:"social" json:"social"`
	Hours              []OpeningHours `mapstructure:"hours" json:"hours"`
	Robots             Robots         `mapstructure:"robots" json:"robots"`
}

// DefaultSite is the configuration the storefront ships with.
func DefaultSite() Site {
	return Site{
		Domain:             "https://pinturasdiamante.com",
		SiteName:           "Pinturas Diamante Oaxaca",
		TitleTemplate:      "%s | Pinturas Diamante Oaxaca",
		DefaultTitle:       "Pinturas Diamante Oaxaca",
		DefaultDescription: "Pinturas Diamante: Soluciones de pintura de alta gama para automotriz, maderas y decorativo. Calidad premium y durabilidad garantizada.",
		DefaultImage:       "/img/catalog/LOGO-WEB-DIAMANTE-PNG.png",
		Keywords:           "pinturas, diamante, oaxaca, automotriz, maderas",
		Language:           "es",
		Locale:             "es_MX",
		Currency:           "MXN",
		PriceRange:         "$",
		Business: Business{
			Name:           "Pinturas Diamante",
			ShortName:      "Diamante",
			Description:    "Pinturas Diamante: Soluciones de pintura de alta gama para automotriz, maderas y decorativo en Oaxaca.",
			Logo:           "/img/catalog/LOGO-WEB-DIAMANTE-PNG.png",
			Email:          "info@pinturasdiamantemx.com",
			Phone:          "+52-951-143-3467",
			AlternatePhone: "+52-951-235-9585",
			Languages:      []string{"es", "en"},
		},
		Location: Address{
			Name:          "Sucursal Ferrocarril",
			StreetAddress: "Avenida ferrocarril 805-D",
			Locality:      "Oaxaca",
			Region:        "Oaxaca",
			PostalCode:    "68000",
			Country:       "MX",
			Latitude:      17.0627,
			Longitude:     -96.7236,
		},
		Social: Social{
			Facebook:  "https://www.facebook.com/pinturasdiamantemx",
			Instagram: "https://www.instagram.com/pinturasdiamantemx",
			LinkedIn:  "https://www.linkedin.com/company/pinturas-diamante",
			YouTube:   "https://www.youtube.com/@pinturasdiamantemx",
			Twitter:   "@pinturasdiamantemx",
		},
		Hours: []OpeningHours{
			{Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, Opens: "08:30", Closes: "18:30"},
			{Days: []string{"Saturday"}, Opens: "08:30", Closes: "16:30"},
		},
		Robots: Robots{
			CrawlDelay:    1,
			Disallow:      []string{"/certs/", "/.git/", "/node_modules/", "/dist/", "/*.json$"},
			BlockedAgents: []string{"MJ12bot"},
			DelayedAgents: map[string]int{"AhrefsBot": 10, "SemrushBot": 5},
		},
	}
}

// Validate reports the settings the generators cannot work without.
func (s Site) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Domain) == "" {
		errs = append(errs, errors.New("site domain is not configured"))
	}
	if strings.TrimSpace(s.Business.Name) == "" {
		errs = append(errs, errors.New("business name is not configured"))
	}
	if !strings.Contains(s.TitleTemplate, "%s") {
		errs = append(errs, errors.New("title template must contain %s"))
	}
	if strings.TrimSpace(s.Location.StreetAddress) == "" {
		errs = append(errs, errors.New("location street address is not configured"))
	}
	return errors.Join(errs...)
}

// AbsoluteURL joins path onto the site domain.
func (s Site) AbsoluteURL(path string) string {
	domain := strings.TrimRight(s.Domain, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return domain + path
}

// AbsoluteImageURL resolves an image path, falling back to the default image.
func (s Site) AbsoluteImageURL(path string) string {
	if path == "" {
		return s.AbsoluteURL(s.DefaultImage)
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.AbsoluteURL(path)
}

// Title renders a page title through the title template.
func (s Site) Title(page string) string {
	if strings.TrimSpace(page) == "" {
		return s.DefaultTitle
	}
	return strings.Replace(s.TitleTemplate, "%s", page, 1)
}

// Value returns custom unless it is blank.
func Value(custom, fallback string) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}
	return fallback
}
