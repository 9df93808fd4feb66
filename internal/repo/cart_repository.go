package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pinturas-diamante/catalog-site/internal/models"
)

// CartKeyPrefix is the storage key the storefront has always used for carts.
const CartKeyPrefix = "diamante_cart"

// ErrCorruptCart is returned when a stored cart cannot be decoded.
var ErrCorruptCart = errors.New("stored cart is corrupt")

// CartRepository persists a session's cart as a JSON array of items.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) ([]models.CartItem, error)
	Save(ctx context.Context, sessionID string, items []models.CartItem) error
	Delete(ctx context.Context, sessionID string) error
}

// CartKey is the storage key of a session's cart.
func CartKey(sessionID string) string {
	return CartKeyPrefix + ":" + sessionID
}

func encodeCart(items []models.CartItem) ([]byte, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	return json.Marshal(items)
}

func decodeCart(data []byte) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}
