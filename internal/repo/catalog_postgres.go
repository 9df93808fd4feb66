package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pinturas-diamante/catalog-site/internal/catalog"
	"github.com/pinturas-diamante/catalog-site/internal/models"
)

// PostgresCatalogSource reads the catalog tables. The catalog is immutable while
// the site runs, so it is read once and served from memory afterwards.
type PostgresCatalogSource struct {
	db *sql.DB
}

func NewPostgresCatalogSource(db *sql.DB) *PostgresCatalogSource {
	return &PostgresCatalogSource{db: db}
}

// Load reads categories, subcategories and products. Business information and
// branch locations are not stored in the database and are taken from base.
func (s *PostgresCatalogSource) Load(ctx context.Context, base *catalog.Catalog) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c := &catalog.Catalog{}
	if base != nil {
		c.Business = base.Business
		c.Locations = base.Locations
	}

	var err error
	if c.Categories, err = s.categories(ctx); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if c.SubCategories, err = s.subCategories(ctx); err != nil {
		return nil, fmt.Errorf("failed to load subcategories: %w", err)
	}
	if c.Products, err = s.products(ctx); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewPostgresCatalogRepository loads the catalog from Postgres and returns an
// in-memory repository over it.
func NewPostgresCatalogRepository(ctx context.Context, db *sql.DB, base *catalog.Catalog) (*InMemoryCatalogRepository, error) {
	c, err := NewPostgresCatalogSource(db).Load(ctx, base)
	if err != nil {
		return nil, err
	}
	return NewInMemoryCatalogRepository(c), nil
}

func (s *PostgresCatalogSource) categories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, description, COALESCE(image, ''), COALESCE(og_image, '') FROM categories ORDER BY position, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.OGImage); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *PostgresCatalogSource) subCategories(ctx context.Context) ([]models.SubCategory, error) {
	query := `SELECT id, category_id, name, COALESCE(description, '') FROM subcategories ORDER BY position, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.SubCategory
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Description); err != nil {
			return nil, err
		}
		subs = append(subs, sc)
	}
	return subs, rows.Err()
}

func (s *PostgresCatalogSource) products(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, category_id, subcategory_id, description, price,
		       COALESCE(price_label, ''), tag, COALESCE(image, ''), COALESCE(og_image, ''),
		       COALESCE(og_title, ''), COALESCE(og_description, '')
		FROM products
		ORDER BY position, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var price sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.SubCategoryID, &p.Description, &price,
			&p.PriceLabel, &p.Tag, &p.Image, &p.OGImage, &p.OGTitle, &p.OGDescription); err != nil {
			return nil, err
		}
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// SeedPostgresCatalog upserts the categories, subcategories and products of c.
// Catalog order is kept in the position column.
func SeedPostgresCatalog(ctx context.Context, db *sql.DB, c *catalog.Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, cat := range c.Categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, description, image, og_image, position)
			VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
				image = EXCLUDED.image, og_image = EXCLUDED.og_image, position = EXCLUDED.position`,
			cat.ID, cat.Name, cat.Description, cat.Image, cat.OGImage, i)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", cat.ID, err)
		}
	}

	for i, sub := range c.SubCategories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO subcategories (id, category_id, name, description, position)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5)
			ON CONFLICT (id) DO UPDATE SET category_id = EXCLUDED.category_id, name = EXCLUDED.name,
				description = EXCLUDED.description, position = EXCLUDED.position`,
			sub.ID, sub.CategoryID, sub.Name, sub.Description, i)
		if err != nil {
			return fmt.Errorf("failed to seed subcategory %s: %w", sub.ID, err)
		}
	}

	for i, p := range c.Products {
		var price sql.NullFloat64
		if p.Price != nil {
			price = sql.NullFloat64{Float64: *p.Price, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, name, category_id, subcategory_id, description, price, price_label,
				tag, image, og_image, og_title, og_description, position)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, NULLIF($9, ''), NULLIF($10, ''),
				NULLIF($11, ''), NULLIF($12, ''), $13)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, category_id = EXCLUDED.category_id,
				subcategory_id = EXCLUDED.subcategory_id, description = EXCLUDED.description,
				price = EXCLUDED.price, price_label = EXCLUDED.price_label, tag = EXCLUDED.tag,
				image = EXCLUDED.image, og_image = EXCLUDED.og_image, og_title = EXCLUDED.og_title,
				og_description = EXCLUDED.og_description, position = EXCLUDED.position`,
			p.ID, p.Name, p.CategoryID, p.SubCategoryID, p.Description, price, p.PriceLabel,
			p.Tag, p.Image, p.OGImage, p.OGTitle, p.OGDescription, i)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}
