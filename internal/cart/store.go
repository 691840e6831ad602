package cart

import (
	"context"
	"sync"

	"github.com/glowmart/storefront/internal/cart/domain"
	"github.com/glowmart/storefront/pkg/logger"
)

// Store owns the in-memory cart for each session and writes through to the
// durable repository after every mutation. The in-memory copy is
// authoritative: a failed load starts the session from an empty cart and a
// failed save degrades the session to memory-only instead of surfacing an
// error to the caller.
//
// The live cart never leaves the store's lock: Get, Mutate and Take all
// return detached copies, so concurrent requests on one session each
// observe either the previous list or the fully applied mutation.
type Store struct {
	repo domain.CartRepository

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

// NewStore creates a cart store backed by the given repository
func NewStore(repo domain.CartRepository) *Store {
	return &Store{
		repo:  repo,
		carts: make(map[string]*domain.Cart),
	}
}

// Get returns a copy of the cart for the session, loading it from the
// repository on first access. A missing entry, a malformed payload or a
// storage failure all start the session from an empty cart.
func (s *Store) Get(ctx context.Context, sessionID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(ctx, sessionID).Clone()
}

func (s *Store) getLocked(ctx context.Context, sessionID string) *domain.Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("Cart load failed, starting from empty cart")
		c = nil
	}
	if c == nil {
		c = &domain.Cart{}
	}
	s.carts[sessionID] = c
	return c
}

// Mutate applies fn to the session's cart, persists the result and
// returns a copy of the updated cart. The mutation commits in memory even
// when the save fails, so the cart for this session degrades to
// memory-only rather than losing the change.
func (s *Store) Mutate(ctx context.Context, sessionID string, fn func(*domain.Cart)) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getLocked(ctx, sessionID)
	fn(c)

	if err := s.repo.Save(ctx, sessionID, c); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("Cart save failed, session continues memory-only")
	}
	return c.Clone()
}

// Take snapshots the session's cart and, when it has rows, removes it
// from memory and the repository in the same critical section. A second
// concurrent Take for the session therefore receives an empty cart, which
// is what makes a double-submitted checkout settle exactly once.
func (s *Store) Take(ctx context.Context, sessionID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.getLocked(ctx, sessionID).Clone()
	if snapshot.IsEmpty() {
		return snapshot
	}

	delete(s.carts, sessionID)
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("Failed to delete persisted cart")
	}
	return snapshot
}

// Drop clears the session's cart in memory and deletes the persisted copy.
// Used on explicit clear.
func (s *Store) Drop(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("Failed to delete persisted cart")
	}
}
