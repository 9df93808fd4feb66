package models

// Product represents a catalog product. Price is optional; most of the catalog
// is sold on quotation and only carries a PriceLabel.
type Product struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	CategoryID    string   `json:"category_id" yaml:"category"`
	SubCategoryID string   `json:"subcategory_id" yaml:"subcategory"`
	Description   string   `json:"description" yaml:"description"`
	Price         *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	PriceLabel    string   `json:"price_label,omitempty" yaml:"price_label,omitempty"`
	Tag           string   `json:"tag" yaml:"tag"`
	Image         string   `json:"image,omitempty" yaml:"image,omitempty"`
	OGImage       string   `json:"og_image,omitempty" yaml:"og_image,omitempty"`
	OGTitle       string   `json:"og_title,omitempty" yaml:"og_title,omitempty"`
	OGDescription string   `json:"og_description,omitempty" yaml:"og_description,omitempty"`
}

// UnitPrice returns the product price, or zero when the product has none.
func (p Product) UnitPrice() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}
