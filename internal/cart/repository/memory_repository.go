package repository

import (
	"context"
	"sync"

	"github.com/glowmart/storefront/internal/cart/domain"
	"github.com/glowmart/storefront/pkg/logger"
)

// MemoryCartRepository is an in-process repository used in tests and as a
// fallback when Redis is unavailable at startup. It stores the same
// serialized form as the Redis repository so decode behavior matches.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryCartRepository creates an empty in-memory cart repository
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string][]byte)}
}

// Load reads the stored cart for a session. Missing or malformed entries
// yield (nil, nil), matching the Redis repository.
func (r *MemoryCartRepository) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	data, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	cart, err := DecodeCart(data)
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("Discarding malformed stored cart")
		return nil, nil
	}
	return cart, nil
}

// Save stores the serialized cart for a session
func (r *MemoryCartRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := EncodeCart(cart)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.carts[sessionID] = data
	r.mu.Unlock()
	return nil
}

// Delete removes the stored cart for a session
func (r *MemoryCartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
	return nil
}

// Put stores a raw payload for a session, bypassing the codec. Tests use
// it to simulate corrupted storage.
func (r *MemoryCartRepository) Put(sessionID string, data []byte) {
	r.mu.Lock()
	r.carts[sessionID] = data
	r.mu.Unlock()
}
