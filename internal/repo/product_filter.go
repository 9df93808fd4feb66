package repo

type ProductFilter struct {
	CategoryID    string
	SubCategoryID string
	Query         string
	Offset        *int
	Limit         *int
}
