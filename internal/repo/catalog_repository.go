package repo

import "github.com/pinturas-diamante/catalog-site/internal/models"

// CatalogRepository is read-only access to the product catalog.
type CatalogRepository interface {
	Categories() ([]models.Category, error)
	CategoryByID(id string) (models.Category, error)
	SubCategories(categoryID string) ([]models.SubCategory, error)
	SubCategoryByID(id string) (models.SubCategory, error)
	Products() ([]models.Product, error)
	ProductByID(id string) (models.Product, error)
	Filter(pf ProductFilter) ([]models.Product, int, error)
}
