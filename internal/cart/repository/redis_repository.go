package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glowmart/storefront/internal/cart/domain"
	"github.com/glowmart/storefront/pkg/logger"
)

const cartKeyPrefix = "cart:"

// DefaultCartTTL keeps abandoned carts for thirty days
const DefaultCartTTL = 30 * 24 * time.Hour

// RedisCartRepository persists serialized carts in Redis, one key per
// session.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository creates a Redis-backed cart repository
func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisCartRepository{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// Load reads the persisted cart for a session. A missing key or a payload
// that fails to decode yields (nil, nil): the stored copy is discarded and
// the session starts from an empty cart. Only storage failures are errors.
func (r *RedisCartRepository) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart, err := DecodeCart(data)
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("Discarding malformed persisted cart")
		return nil, nil
	}
	return cart, nil
}

// Save writes the full serialized cart for a session
func (r *RedisCartRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := EncodeCart(cart)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the persisted cart for a session
func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
