package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReceiptKeyPrefix is the storage key prefix of pending order receipts.
const ReceiptKeyPrefix = "diamante_order"

var ErrReceiptNotFound = errors.New("no pending receipt")

// ReceiptRepository keeps the encoded receipt of a session's last order until
// it has been shown once.
type ReceiptRepository interface {
	Put(ctx context.Context, sessionID string, receipt []byte) error
	// Take returns the pending receipt and forgets it.
	Take(ctx context.Context, sessionID string) ([]byte, error)
}

func ReceiptKey(sessionID string) string {
	return ReceiptKeyPrefix + ":" + sessionID
}

type receiptEntry struct {
	data    []byte
	expires time.Time
}

type InMemoryReceiptRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]receiptEntry
}

func NewInMemoryReceiptRepository(ttl time.Duration) *InMemoryReceiptRepository {
	return &InMemoryReceiptRepository{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]receiptEntry),
	}
}

func (r *InMemoryReceiptRepository) Put(_ context.Context, sessionID string, receipt []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, e := range r.entries {
		if !now.Before(e.expires) {
			delete(r.entries, k)
		}
	}
	r.entries[ReceiptKey(sessionID)] = receiptEntry{data: receipt, expires: now.Add(r.ttl)}
	return nil
}

func (r *InMemoryReceiptRepository) Take(_ context.Context, sessionID string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ReceiptKey(sessionID)
	e, ok := r.entries[key]
	if !ok {
		return nil, ErrReceiptNotFound
	}
	delete(r.entries, key)
	if !r.now().Before(e.expires) {
		return nil, ErrReceiptNotFound
	}
	return e.data, nil
}

// Len is the number of stored receipts, expired ones included.
func (r *InMemoryReceiptRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type RedisReceiptRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisReceiptRepository(rdb *redis.Client, ttl time.Duration) *RedisReceiptRepository {
	return &RedisReceiptRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisReceiptRepository) Put(ctx context.Context, sessionID string, receipt []byte) error {
	if err := r.rdb.Set(ctx, ReceiptKey(sessionID), receipt, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}
	return nil
}

func (r *RedisReceiptRepository) Take(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.rdb.GetDel(ctx, ReceiptKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt: %w", err)
	}
	return data, nil
}
