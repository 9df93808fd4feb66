// Package order turns a session's cart into a confirmed order. There is no
// order backend yet: placing an order waits a simulated round trip, logs the
// order and empties the cart.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/repo"
	"go.uber.org/zap"
)

const (
	DefaultLatency    = 1500 * time.Millisecond
	DefaultReceiptTTL = 10 * time.Minute
)

var ErrEmptyCart = errors.New("cannot place an order with an empty cart")

type Receipt struct {
	OrderID    string            `json:"order_id"`
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
	PlacedAt   time.Time         `json:"placed_at"`
}

type Service struct {
	carts    *cart.Service
	receipts repo.ReceiptRepository
	log      *zap.Logger
	latency  time.Duration
	now      func() time.Time
}

// NewService builds the order service. Receipts are kept in memory when
// receipts is nil.
func NewService(carts *cart.Service, receipts repo.ReceiptRepository, latency time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if latency < 0 {
		latency = 0
	}
	if receipts == nil {
		receipts = repo.NewInMemoryReceiptRepository(DefaultReceiptTTL)
	}
	return &Service{carts: carts, receipts: receipts, log: log, latency: latency, now: time.Now}
}

// Place confirms the session's cart. The cart stays locked for the simulated
// round trip. If ctx is done first the cart is left untouched and ctx's error
// is returned. The receipt is also kept for the session until TakeReceipt.
func (s *Service) Place(ctx context.Context, sessionID string) (Receipt, error) {
	c, err := s.carts.Checkout(ctx, sessionID, func(c cart.Cart) error {
		if c.IsEmpty() {
			return ErrEmptyCart
		}
		if s.latency <= 0 {
			return nil
		}
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	})
	if err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		OrderID:    uuid.NewString(),
		Items:      c.Items,
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice,
		PlacedAt:   s.now().UTC(),
	}

	ids := make([]string, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.ID
	}
	s.log.Info("order placed",
		zap.String("order_id", receipt.OrderID),
		zap.String("session", sessionID),
		zap.Strings("products", ids),
		zap.Int("total_items", receipt.TotalItems),
		zap.Float64("total_price", receipt.TotalPrice),
	)

	// A lost receipt only hides the confirmation on the cart page.
	if data, err := json.Marshal(receipt); err == nil {
		if err := s.receipts.Put(ctx, sessionID, data); err != nil {
			s.log.Warn("could not keep receipt", zap.String("order_id", receipt.OrderID), zap.Error(err))
		}
	}
	return receipt, nil
}

// TakeReceipt returns the receipt of the session's last order once. ok is
// false when there is none.
func (s *Service) TakeReceipt(ctx context.Context, sessionID string) (receipt Receipt, ok bool, err error) {
	data, err := s.receipts.Take(ctx, sessionID)
	if errors.Is(err, repo.ErrReceiptNotFound) {
		return Receipt{}, false, nil
	}
	if err != nil {
		return Receipt{}, false, err
	}
	if err := json.Unmarshal(data, &receipt); err != nil {
		return Receipt{}, false, fmt.Errorf("failed to decode receipt: %w", err)
	}
	return receipt, true, nil
}
