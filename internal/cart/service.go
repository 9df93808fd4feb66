// Package cart implements the shopping cart of a browsing session on top of a
// repo.CartRepository.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"go.uber.org/zap"
)

var (
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
	ErrItemNotInCart   = errors.New("product is not in the cart")
	ErrNoSession       = errors.New("missing cart session")
)

// Cart is a snapshot of a session's cart with its totals.
type Cart struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

// IsEmpty reports whether the cart has no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func newCart(items []models.CartItem) Cart {
	c := Cart{Items: items}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	for _, it := range c.Items {
		c.TotalItems += it.Quantity
		c.TotalPrice += it.Subtotal()
	}
	return c
}

type Service struct {
	carts   repo.CartRepository
	catalog repo.CatalogRepository
	log     *zap.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(carts repo.CartRepository, catalog repo.CatalogRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		carts:   carts,
		catalog: catalog,
		log:     log,
		locks:   make(map[string]*sessionLock),
	}
}

// lock serialises read-modify-write cycles of one session. Locks are dropped
// once nobody holds or waits on them.
func (s *Service) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

// load reads the stored items and reconciles them with the catalog: items with
// a non-positive quantity or a product that no longer exists are dropped and
// product fields are refreshed. A corrupt stored cart is treated as empty.
func (s *Service) load(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	stored, err := s.carts.Load(ctx, sessionID)
	if errors.Is(err, repo.ErrCorruptCart) {
		s.log.Warn("discarding unreadable cart", zap.String("session", sessionID), zap.Error(err))
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	items := make([]models.CartItem, 0, len(stored))
	for _, it := range stored {
		if it.Quantity <= 0 {
			continue
		}
		p, err := s.catalog.ProductByID(it.ID)
		if errors.Is(err, repo.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, models.CartItem{Product: p, Quantity: it.Quantity})
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, sessionID string, items []models.CartItem) (Cart, error) {
	if err := s.carts.Save(ctx, sessionID, items); err != nil {
		return Cart{}, err
	}
	return newCart(items), nil
}

// Get returns the session's cart.
func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrNoSession
	}
	unlock := s.lock(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}
	return newCart(items), nil
}

// Add puts one unit of the product in the cart.
func (s *Service) Add(ctx context.Context, sessionID, productID string) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrNoSession
	}
	p, err := s.catalog.ProductByID(productID)
	if err != nil {
		return Cart{}, err
	}

	unlock := s.lock(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	found := false
	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{Product: p, Quantity: 1})
	}
	return s.save(ctx, sessionID, items)
}

// SetQuantity changes the quantity of an item already in the cart. Zero
// removes the item.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrNoSession
	}
	if quantity < 0 {
		return Cart{}, ErrInvalidQuantity
	}

	unlock := s.lock(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Cart{}, fmt.Errorf("%w: %s", ErrItemNotInCart, productID)
	}

	if quantity == 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	return s.save(ctx, sessionID, items)
}

// Remove deletes an item. Removing a product that is not in the cart is not an error.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrNoSession
	}
	unlock := s.lock(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}
	return s.save(ctx, sessionID, kept)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	unlock := s.lock(sessionID)
	defer unlock()

	return s.carts.Delete(ctx, sessionID)
}

// Checkout runs confirm on the session's cart and empties the cart when
// confirm succeeds. The session stays locked throughout, so changes made
// while confirm runs wait for it and land in the next cart. When confirm
// fails the cart is left as it was.
func (s *Service) Checkout(ctx context.Context, sessionID string, confirm func(Cart) error) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrNoSession
	}
	unlock := s.lock(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}
	c := newCart(items)
	if err := confirm(c); err != nil {
		return Cart{}, err
	}
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return Cart{}, err
	}
	return c, nil
}
