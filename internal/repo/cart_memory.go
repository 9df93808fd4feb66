package repo

import (
	"context"
	"sync"

	"github.com/pinturas-diamante/catalog-site/internal/models"
)

// InMemoryCartRepository keeps encoded carts in a map. It stores the same JSON
// bytes the Redis repository does so both behave alike on round trips.
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{carts: make(map[string][]byte)}
}

func (r *InMemoryCartRepository) Load(_ context.Context, sessionID string) ([]models.CartItem, error) {
	r.mu.RLock()
	data, ok := r.carts[CartKey(sessionID)]
	r.mu.RUnlock()
	if !ok {
		return []models.CartItem{}, nil
	}
	return decodeCart(data)
}

func (r *InMemoryCartRepository) Save(_ context.Context, sessionID string, items []models.CartItem) error {
	data, err := encodeCart(items)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.carts[CartKey(sessionID)] = data
	r.mu.Unlock()
	return nil
}

func (r *InMemoryCartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, CartKey(sessionID))
	r.mu.Unlock()
	return nil
}

// SetRaw stores data as-is under the session's key.
func (r *InMemoryCartRepository) SetRaw(sessionID string, data []byte) {
	r.mu.Lock()
	r.carts[CartKey(sessionID)] = data
	r.mu.Unlock()
}

// Clear drops every stored cart.
func (r *InMemoryCartRepository) Clear() {
	r.mu.Lock()
	r.carts = make(map[string][]byte)
	r.mu.Unlock()
}
