// Package catalog holds the static product catalog of the store. The data ships
// embedded in the binary and is decoded once at startup; after Load returns the
// catalog is treated as read-only.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/pinturas-diamante/catalog-site/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the decoded catalog file.
type Catalog struct {
	Business      models.Business      `yaml:"business"`
	Locations     []models.Location    `yaml:"locations"`
	Categories    []models.Category    `yaml:"categories"`
	SubCategories []models.SubCategory `yaml:"subcategories"`
	Products      []models.Product     `yaml:"products"`
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(bytes.NewReader(catalogYAML))
}

// MustLoad is Load for package-level initialisation and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog document and validates its references.
func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks id uniqueness and that every subcategory and product points at
// entries that exist.
func (c *Catalog) Validate() error {
	categories := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category %q has no id", cat.Name)
		}
		if categories[cat.ID] {
			return fmt.Errorf("duplicated category id %q", cat.ID)
		}
		categories[cat.ID] = true
	}

	subOwner := make(map[string]string, len(c.SubCategories))
	for _, sub := range c.SubCategories {
		if sub.ID == "" {
			return fmt.Errorf("subcategory %q has no id", sub.Name)
		}
		if _, dup := subOwner[sub.ID]; dup {
			return fmt.Errorf("duplicated subcategory id %q", sub.ID)
		}
		if !categories[sub.CategoryID] {
			return fmt.Errorf("subcategory %q references unknown category %q", sub.ID, sub.CategoryID)
		}
		subOwner[sub.ID] = sub.CategoryID
	}

	products := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			return fmt.Errorf("product %q has no id", p.Name)
		}
		if products[p.ID] {
			return fmt.Errorf("duplicated product id %q", p.ID)
		}
		products[p.ID] = true

		if !categories[p.CategoryID] {
			return fmt.Errorf("product %q references unknown category %q", p.ID, p.CategoryID)
		}
		owner, ok := subOwner[p.SubCategoryID]
		if !ok {
			return fmt.Errorf("product %q references unknown subcategory %q", p.ID, p.SubCategoryID)
		}
		if owner != p.CategoryID {
			return fmt.Errorf("product %q: subcategory %q belongs to %q, not %q", p.ID, p.SubCategoryID, owner, p.CategoryID)
		}
		if p.Price != nil && *p.Price < 0 {
			return fmt.Errorf("product %q has a negative price", p.ID)
		}
	}
	return nil
}
