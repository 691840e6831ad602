package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/internal/cart/domain"
	"github.com/glowmart/storefront/internal/cart/repository"
)

// failingRepository simulates a storage backend that is down
type failingRepository struct {
	loadErr   error
	saveErr   error
	deleteErr error
}

func (r *failingRepository) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return nil, r.loadErr
}

func (r *failingRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	return r.saveErr
}

func (r *failingRepository) Delete(ctx context.Context, sessionID string) error {
	return r.deleteErr
}

func TestStoreGet(t *testing.T) {
	ctx := context.Background()

	t.Run("loads persisted cart on first access", func(t *testing.T) {
		repo := repository.NewMemoryCartRepository()
		saved := &domain.Cart{Items: []domain.LineItem{
			{ProductID: "p1", UnitPrice: 10, Quantity: 2},
		}}
		require.NoError(t, repo.Save(ctx, "s1", saved))

		store := NewStore(repo)
		c := store.Get(ctx, "s1")
		require.Len(t, c.Items, 1)
		assert.Equal(t, "p1", c.Items[0].ProductID)
	})

	t.Run("missing session starts empty", func(t *testing.T) {
		store := NewStore(repository.NewMemoryCartRepository())
		c := store.Get(ctx, "unknown")
		assert.True(t, c.IsEmpty())
	})

	t.Run("load failure starts empty", func(t *testing.T) {
		store := NewStore(&failingRepository{loadErr: errors.New("connection refused")})
		c := store.Get(ctx, "s1")
		assert.True(t, c.IsEmpty())
	})
}

func TestStoreMutate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists after mutation", func(t *testing.T) {
		repo := repository.NewMemoryCartRepository()
		store := NewStore(repo)

		store.Mutate(ctx, "s1", func(c *domain.Cart) {
			c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 1})
		})

		persisted, err := repo.Load(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, persisted)
		require.Len(t, persisted.Items, 1)
	})

	t.Run("mutation commits in memory when save fails", func(t *testing.T) {
		store := NewStore(&failingRepository{
			loadErr: errors.New("connection refused"),
			saveErr: errors.New("connection refused"),
		})

		c := store.Mutate(ctx, "s1", func(c *domain.Cart) {
			c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 2})
		})
		require.Len(t, c.Items, 1)

		// The session keeps operating memory-only
		again := store.Get(ctx, "s1")
		require.Len(t, again.Items, 1)
		assert.Equal(t, 2, again.Items[0].Quantity)
	})
}

func TestStoreReturnsDetachedCopies(t *testing.T) {
	ctx := context.Background()

	t.Run("mutating the cart from Get does not touch the store", func(t *testing.T) {
		store := NewStore(repository.NewMemoryCartRepository())
		store.Mutate(ctx, "s1", func(c *domain.Cart) {
			c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 1})
		})

		c := store.Get(ctx, "s1")
		c.Items[0].Quantity = 99
		c.AddItem(domain.LineItem{ProductID: "p2", UnitPrice: 5, Quantity: 1})

		again := store.Get(ctx, "s1")
		require.Len(t, again.Items, 1)
		assert.Equal(t, 1, again.Items[0].Quantity)
	})

	t.Run("mutating the cart from Mutate does not touch the store", func(t *testing.T) {
		store := NewStore(repository.NewMemoryCartRepository())
		c := store.Mutate(ctx, "s1", func(c *domain.Cart) {
			c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 1})
		})
		c.Items[0].Quantity = 99

		assert.Equal(t, 1, store.Get(ctx, "s1").Items[0].Quantity)
	})
}

func TestStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore(repository.NewMemoryCartRepository())

	const writers = 8
	const addsPerWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsPerWriter; i++ {
				store.Mutate(ctx, "s1", func(c *domain.Cart) {
					c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 1})
				})
			}
		}()
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsPerWriter; i++ {
				c := store.Get(ctx, "s1")
				// Aggregates computed on the snapshot must agree with its rows
				assert.InDelta(t, float64(c.Count())*10, c.Total(), 0.001)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*addsPerWriter, store.Get(ctx, "s1").Count())
}

func TestStoreTake(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots and clears the session", func(t *testing.T) {
		repo := repository.NewMemoryCartRepository()
		store := NewStore(repo)
		store.Mutate(ctx, "s1", func(c *domain.Cart) {
			c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 3})
		})

		taken := store.Take(ctx, "s1")
		require.Len(t, taken.Items, 1)
		assert.Equal(t, 3, taken.Count())

		assert.True(t, store.Get(ctx, "s1").IsEmpty())
		persisted, err := repo.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, persisted)
	})

	t.Run("second take finds an empty cart", func(t *testing.T) {
		store := NewStore(repository.NewMemoryCartRepository())
		store.Mutate(ctx, "s1", func(c *domain.Cart) {
			c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 1})
		})

		require.False(t, store.Take(ctx, "s1").IsEmpty())
		assert.True(t, store.Take(ctx, "s1").IsEmpty())
	})

	t.Run("taking an empty session is a no-op", func(t *testing.T) {
		store := NewStore(repository.NewMemoryCartRepository())
		assert.True(t, store.Take(ctx, "s1").IsEmpty())
	})
}

func TestStoreDrop(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCartRepository()
	store := NewStore(repo)

	store.Mutate(ctx, "s1", func(c *domain.Cart) {
		c.AddItem(domain.LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 1})
	})

	store.Drop(ctx, "s1")

	persisted, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, persisted)
	assert.True(t, store.Get(ctx, "s1").IsEmpty())
}
