package handlers

import "github.com/pinturas-diamante/catalog-site/internal/models"

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []models.Product `json:"data"`
	Meta Meta             `json:"meta"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
}
