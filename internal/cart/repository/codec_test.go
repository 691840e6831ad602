package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/internal/cart/domain"
)

func TestCodecRoundTrip(t *testing.T) {
	original := &domain.Cart{Items: []domain.LineItem{
		{ProductID: "p1", VariantKey: "M", Name: "Hoodie", UnitPrice: 39.90, ImageRef: "img/hoodie.png", Quantity: 2},
		{ProductID: "p2", Name: "Mug", UnitPrice: 7.50, Quantity: 1},
	}}

	data, err := EncodeCart(original)
	require.NoError(t, err)

	decoded, err := DecodeCart(data)
	require.NoError(t, err)
	assert.Equal(t, original.Items, decoded.Items)

	// A second round trip produces identical bytes
	again, err := EncodeCart(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing session yields nil without error", func(t *testing.T) {
		repo := NewMemoryCartRepository()
		cart, err := repo.Load(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, cart)
	})

	t.Run("malformed payload yields nil without error", func(t *testing.T) {
		repo := NewMemoryCartRepository()
		repo.Put("s1", []byte("{not json"))

		cart, err := repo.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, cart)
	})

	t.Run("save then load preserves rows", func(t *testing.T) {
		repo := NewMemoryCartRepository()
		original := &domain.Cart{Items: []domain.LineItem{
			{ProductID: "p1", UnitPrice: 12, Quantity: 3},
		}}
		require.NoError(t, repo.Save(ctx, "s1", original))

		loaded, err := repo.Load(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, original.Items, loaded.Items)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		repo := NewMemoryCartRepository()
		require.NoError(t, repo.Save(ctx, "s1", &domain.Cart{}))
		require.NoError(t, repo.Delete(ctx, "s1"))

		cart, err := repo.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, cart)
	})
}
