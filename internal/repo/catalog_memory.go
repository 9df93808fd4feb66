package repo

import (
	"github.com/pinturas-diamante/catalog-site/internal/catalog"
	"github.com/pinturas-diamante/catalog-site/internal/models"
)

// InMemoryCatalogRepository is an in-memory implementation of CatalogRepository.
// It is built once and never mutated, so it is safe for concurrent readers.
type InMemoryCatalogRepository struct {
	categories    []models.Category
	subCategories []models.SubCategory
	products      []models.Product
}

// NewInMemoryCatalogRepository creates a repository over the given catalog.
func NewInMemoryCatalogRepository(c *catalog.Catalog) *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{
		categories:    append([]models.Category(nil), c.Categories...),
		subCategories: append([]models.SubCategory(nil), c.SubCategories...),
		products:      append([]models.Product(nil), c.Products...),
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.CategoryID != "" && p.CategoryID != pf.CategoryID {
		return false
	}
	if pf.SubCategoryID != "" && p.SubCategoryID != pf.SubCategoryID {
		return false
	}
	return catalog.Matches(pf.Query, p.Name, p.Tag)
}

func (r *InMemoryCatalogRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	var filtered []models.Product

	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, 0, nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	if filtered == nil {
		return []models.Product{}, 0, nil
	}
	return filtered[start:end], len(filtered), nil
}

// Categories returns every category in catalog order.
func (r *InMemoryCatalogRepository) Categories() ([]models.Category, error) {
	return append([]models.Category(nil), r.categories...), nil
}

// CategoryByID retrieves a category by its ID.
func (r *InMemoryCatalogRepository) CategoryByID(id string) (models.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

// SubCategories returns the subcategories of a category. An unknown category
// is reported as ErrCategoryNotFound rather than an empty list.
func (r *InMemoryCatalogRepository) SubCategories(categoryID string) ([]models.SubCategory, error) {
	if _, err := r.CategoryByID(categoryID); err != nil {
		return nil, err
	}
	subs := []models.SubCategory{}
	for _, s := range r.subCategories {
		if s.CategoryID == categoryID {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

func (r *InMemoryCatalogRepository) SubCategoryByID(id string) (models.SubCategory, error) {
	for _, s := range r.subCategories {
		if s.ID == id {
			return s, nil
		}
	}
	return models.SubCategory{}, ErrSubCategoryNotFound
}

// Products retrieves all products from the repository.
func (r *InMemoryCatalogRepository) Products() ([]models.Product, error) {
	return append([]models.Product(nil), r.products...), nil
}

// ProductByID retrieves a product by its ID.
func (r *InMemoryCatalogRepository) ProductByID(id string) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
