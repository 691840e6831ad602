package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/internal/product/domain"
)

// fakeRepository is an in-memory ProductRepository for query tests
type fakeRepository struct {
	products []domain.Product
}

func (r *fakeRepository) Create(product *domain.Product) error { return nil }

func (r *fakeRepository) FindByID(id uint) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, fmt.Errorf("product not found")
}

func (r *fakeRepository) FindBySKU(sku string) (*domain.Product, error) {
	return nil, fmt.Errorf("product not found")
}

func (r *fakeRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	return r.products, nil
}

func (r *fakeRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(product *domain.Product) error { return nil }
func (r *fakeRepository) Delete(id uint) error                 { return nil }

func (r *fakeRepository) Count() (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeRepository) UpdateStock(id uint, stock int) error     { return nil }
func (r *fakeRepository) DecrementStock(id uint, quantity int) error { return nil }

func seedRepository() *fakeRepository {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &fakeRepository{products: []domain.Product{
		{ID: 1, Name: "Trail Runner", Brand: "Northpeak", Price: 120, Rating: 4.5, Stock: 10, Category: "shoes", SKU: "NP-1", Availability: domain.AvailabilityInStock, IsActive: true, CreatedAt: created},
		{ID: 2, Name: "City Sneaker", Brand: "Urbana", Price: 80, Rating: 3.8, Stock: 5, Category: "shoes", SKU: "UR-1", IsActive: true, CreatedAt: created},
		{ID: 3, Name: "Retired Boot", Brand: "Northpeak", Price: 150, Rating: 4.0, Stock: 0, Category: "shoes", SKU: "NP-2", IsActive: false, CreatedAt: created},
		{ID: 4, Name: "Wool Beanie", Brand: "Urbana", Price: 25, Rating: 4.1, Stock: 30, Category: "accessories", SKU: "UR-2", Availability: domain.AvailabilityInStock, IsActive: true, CreatedAt: created},
	}}
}

func TestListProducts(t *testing.T) {
	handler := NewListProductsHandler(seedRepository())

	t.Run("returns catalog items for active products only", func(t *testing.T) {
		items, err := handler.Handle(ListProductsQuery{})
		require.NoError(t, err)
		require.Len(t, items, 3)

		for _, item := range items {
			assert.NotEqual(t, "3", item.ID)
		}
	})

	t.Run("maps the public read model", func(t *testing.T) {
		items, err := handler.Handle(ListProductsQuery{})
		require.NoError(t, err)

		first := items[0]
		assert.Equal(t, "1", first.ID)
		assert.Equal(t, "Trail Runner", first.Name)
		assert.Equal(t, "Northpeak", first.Brand)
		assert.Equal(t, domain.AvailabilityInStock, first.Availability)
		assert.False(t, first.DateAdded.IsZero())

		// A blank availability column defaults to in-stock in the read model
		second := items[1]
		assert.Equal(t, domain.AvailabilityInStock, second.Availability)
	})

	t.Run("filters by category", func(t *testing.T) {
		items, err := handler.Handle(ListProductsQuery{Category: "accessories"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Wool Beanie", items[0].Name)
	})
}

func TestGetProduct(t *testing.T) {
	handler := NewGetProductHandler(seedRepository())

	product, err := handler.Handle(GetProductQuery{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "City Sneaker", product.Name)

	_, err = handler.Handle(GetProductQuery{ID: 0})
	assert.Error(t, err)

	_, err = handler.Handle(GetProductQuery{ID: 99})
	assert.Error(t, err)
}

func TestGetStats(t *testing.T) {
	handler := NewGetStatsHandler(seedRepository())

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalProducts)
	assert.Equal(t, int64(3), stats.ActiveProducts)
	assert.Equal(t, int64(45), stats.TotalStock)
	assert.InDelta(t, 93.75, stats.AveragePrice, 0.0001)
	assert.InDelta(t, 4.1, stats.AverageRating, 0.0001)
	assert.Equal(t, int64(2), stats.Categories)
	assert.Equal(t, int64(2), stats.Brands)
}
