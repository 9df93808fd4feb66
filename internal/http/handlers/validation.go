package handlers

import (
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateAddCartItem(req AddCartItemRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(req.ProductID) == "" {
		errs = append(errs, ValidationError{Field: "product_id", Description: "Product ID is required"})
	}
	return errs
}

func validateUpdateCartItem(req UpdateCartItemRequest) []ValidationError {
	errs := []ValidationError{}
	if req.Quantity == nil {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Quantity is required"})
	} else if *req.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Quantity cannot be negative"})
	}
	return errs
}

func validateProductQuery(offset, limit *int) []ValidationError {
	errs := []ValidationError{}
	if limit != nil && *limit <= 0 {
		errs = append(errs, ValidationError{Field: "limit", Description: "limit must be greater than zero"})
	}
	if offset != nil && *offset < 0 {
		errs = append(errs, ValidationError{Field: "offset", Description: "offset must be zero or positive"})
	}
	return errs
}
