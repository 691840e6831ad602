package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/cart/repository"
	"github.com/glowmart/storefront/kafka"
)

// fakePublisher captures published checkout events
type fakePublisher struct {
	events []kafka.CheckoutCompletedEvent
	err    error
}

func (p *fakePublisher) PublishCheckoutCompleted(ctx context.Context, event kafka.CheckoutCompletedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func seedCart(t *testing.T, store *cart.Store, sessionID string) {
	t.Helper()
	ctx := context.Background()
	addHandler := NewAddItemHandler(store)
	_, err := addHandler.Handle(ctx, AddItemCommand{
		SessionID: sessionID,
		ProductID: "42",
		Name:      "Backpack",
		UnitPrice: 45.00,
		Quantity:  2,
	})
	require.NoError(t, err)
	_, err = addHandler.Handle(ctx, AddItemCommand{
		SessionID:  sessionID,
		ProductID:  "7",
		VariantKey: "blue",
		Name:       "Bottle",
		UnitPrice:  12.50,
		Quantity:   1,
	})
	require.NoError(t, err)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes event and empties the cart", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		publisher := &fakePublisher{}
		handler := NewCheckoutHandler(store, publisher)
		seedCart(t, store, "s1")

		result, err := handler.Handle(ctx, CheckoutCommand{SessionID: "s1"})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.OrderID)
		assert.InDelta(t, 102.50, result.Total, 0.0001)
		assert.Equal(t, 3, result.ItemCount)

		require.Len(t, publisher.events, 1)
		event := publisher.events[0]
		assert.Equal(t, result.OrderID, event.OrderID)
		assert.Equal(t, "s1", event.SessionID)
		require.Len(t, event.Items, 2)
		assert.Equal(t, "42", event.Items[0].ProductID)
		assert.Equal(t, "blue", event.Items[1].VariantKey)

		assert.True(t, store.Get(ctx, "s1").IsEmpty())
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		handler := NewCheckoutHandler(store, &fakePublisher{})

		_, err := handler.Handle(ctx, CheckoutCommand{SessionID: "s1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cart is empty")
	})

	t.Run("missing session id is rejected", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		handler := NewCheckoutHandler(store, &fakePublisher{})

		_, err := handler.Handle(ctx, CheckoutCommand{})
		require.Error(t, err)
	})

	t.Run("order completes when publish fails", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		publisher := &fakePublisher{err: errors.New("broker down")}
		handler := NewCheckoutHandler(store, publisher)
		seedCart(t, store, "s1")

		result, err := handler.Handle(ctx, CheckoutCommand{SessionID: "s1"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.OrderID)
		assert.True(t, store.Get(ctx, "s1").IsEmpty())
	})

	t.Run("order completes without a publisher", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		handler := NewCheckoutHandler(store, nil)
		seedCart(t, store, "s1")

		result, err := handler.Handle(ctx, CheckoutCommand{SessionID: "s1"})
		require.NoError(t, err)
		assert.Equal(t, 3, result.ItemCount)
	})

	t.Run("double-submitted checkout settles exactly once", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		publisher := &fakePublisher{}
		handler := NewCheckoutHandler(store, publisher)
		seedCart(t, store, "s1")

		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := handler.Handle(ctx, CheckoutCommand{SessionID: "s1"})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var succeeded, rejected int
		for err := range errs {
			if err != nil {
				rejected++
			} else {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, rejected)
		assert.Len(t, publisher.events, 1)
		assert.True(t, store.Get(ctx, "s1").IsEmpty())
	})
}

func TestUpdateQuantityCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity below 1 leaves the cart unchanged", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		seedCart(t, store, "s1")
		handler := NewUpdateQuantityHandler(store)

		c, err := handler.Handle(ctx, UpdateQuantityCommand{
			SessionID: "s1",
			ProductID: "42",
			Quantity:  0,
		})
		require.NoError(t, err)
		require.Len(t, c.Items, 2)
		assert.Equal(t, 2, c.Items[0].Quantity)
	})

	t.Run("replaces the quantity", func(t *testing.T) {
		store := cart.NewStore(repository.NewMemoryCartRepository())
		seedCart(t, store, "s1")
		handler := NewUpdateQuantityHandler(store)

		c, err := handler.Handle(ctx, UpdateQuantityCommand{
			SessionID: "s1",
			ProductID: "42",
			Quantity:  9,
		})
		require.NoError(t, err)
		assert.Equal(t, 9, c.Items[0].Quantity)
	})
}

func TestAddItemCommandValidation(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(repository.NewMemoryCartRepository())
	handler := NewAddItemHandler(store)

	_, err := handler.Handle(ctx, AddItemCommand{ProductID: "1", UnitPrice: 1})
	assert.Error(t, err)

	_, err = handler.Handle(ctx, AddItemCommand{SessionID: "s1", UnitPrice: 1})
	assert.Error(t, err)

	_, err = handler.Handle(ctx, AddItemCommand{SessionID: "s1", ProductID: "1", UnitPrice: -1})
	assert.Error(t, err)

	c, err := handler.Handle(ctx, AddItemCommand{SessionID: "s1", ProductID: "1", UnitPrice: 0, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}
