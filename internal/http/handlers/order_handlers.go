package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/pinturas-diamante/catalog-site/internal/order"
	"go.uber.org/zap"
)

// PlaceOrderHandler godoc
// @Summary Place an order with the session cart
// @Description Simulates the order round trip, then empties the cart. Orders are not stored.
// @Tags orders
// @Produce json
// @Success 201 {object} order.Receipt
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/orders [post]
func PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	receipt, err := orderService.Place(r.Context(), SessionID(r))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			writeError(w, http.StatusConflict, "cart is empty")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "order was cancelled")
		default:
			logger.Error("could not place order", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not place order")
		}
		return
	}
	respond(w, http.StatusCreated, receipt)
}
