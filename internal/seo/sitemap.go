package seo

import (
	"encoding/xml"
	"fmt"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders sitemap.xml for the static pages and the whole catalog. All
// entries share the lastmod date of now.
func (g *Generator) Sitemap(now time.Time) ([]byte, error) {
	lastmod := now.UTC().Format("2006-01-02")
	set := urlSet{XMLNS: sitemapNS}
	add := func(path, changefreq, priority string) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        g.site.AbsoluteURL(path),
			LastMod:    lastmod,
			ChangeFreq: changefreq,
			Priority:   priority,
		})
	}

	add(HomePath, "weekly", "1.0")
	add(ContactPath, "monthly", "0.8")
	add(CatalogPath, "weekly", "0.9")

	categories, err := g.catalog.Categories()
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	for _, c := range categories {
		add(CategoryPath(c.ID), "weekly", "0.85")
	}
	for _, c := range categories {
		subs, err := g.catalog.SubCategories(c.ID)
		if err != nil {
			return nil, fmt.Errorf("sitemap: %w", err)
		}
		for _, s := range subs {
			add(SubCategoryPath(c.ID, s.ID), "weekly", "0.80")
		}
	}

	products, err := g.catalog.Products()
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	for _, p := range products {
		add(ProductPath(p.ID), "monthly", "0.70")
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
