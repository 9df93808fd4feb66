package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pinturas-diamante/catalog-site/internal/cart"
	repo "github.com/pinturas-diamante/catalog-site/internal/repo"
	"go.uber.org/zap"
)

// cartError maps cart service errors to API responses.
func cartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, cart.ErrItemNotInCart):
		writeError(w, http.StatusNotFound, "product is not in the cart")
	case errors.Is(err, cart.ErrInvalidQuantity):
		respond(w, http.StatusBadRequest, []ValidationError{{Field: "quantity", Description: "Quantity cannot be negative"}})
	case errors.Is(err, cart.ErrNoSession):
		writeError(w, http.StatusBadRequest, "missing cart session")
	default:
		logger.Error("cart operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update cart")
	}
}

// GetCartHandler godoc
// @Summary Get the session cart
// @Tags cart
// @Produce json
// @Success 200 {object} cart.Cart
// @Failure 500 {object} ErrorResponse
// @Router /api/cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	c, err := cartService.Get(r.Context(), SessionID(r))
	if err != nil {
		cartError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

// AddCartItemHandler godoc
// @Summary Add one unit of a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddCartItemRequest true "Product to add"
// @Success 200 {object} cart.Cart
// @Failure 400 {array} ValidationError
// @Failure 404 {object} ErrorResponse
// @Router /api/cart/items [post]
func AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if validationErrors := validateAddCartItem(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	c, err := cartService.Add(r.Context(), SessionID(r), req.ProductID)
	if err != nil {
		cartError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

// UpdateCartItemHandler godoc
// @Summary Set the quantity of a cart item
// @Description A quantity of zero removes the item.
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param item body UpdateCartItemRequest true "New quantity"
// @Success 200 {object} cart.Cart
// @Failure 400 {array} ValidationError
// @Failure 404 {object} ErrorResponse
// @Router /api/cart/items/{id} [put]
func UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if validationErrors := validateUpdateCartItem(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	c, err := cartService.SetQuantity(r.Context(), SessionID(r), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		cartError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

// RemoveCartItemHandler godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} cart.Cart
// @Router /api/cart/items/{id} [delete]
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	c, err := cartService.Remove(r.Context(), SessionID(r), chi.URLParam(r, "id"))
	if err != nil {
		cartError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

// ClearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Success 204 "Cart cleared"
// @Router /api/cart [delete]
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	if err := cartService.Clear(r.Context(), SessionID(r)); err != nil {
		cartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
