package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisCartRepository stores carts as JSON strings. Every save refreshes the TTL
// so abandoned carts expire on their own.
type RedisCartRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartRepository(rdb *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisCartRepository) Load(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	data, err := r.rdb.Get(ctx, CartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return decodeCart(data)
}

func (r *RedisCartRepository) Save(ctx context.Context, sessionID string, items []models.CartItem) error {
	data, err := encodeCart(items)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, CartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, CartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
