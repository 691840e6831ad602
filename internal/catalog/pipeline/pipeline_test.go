package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/internal/catalog/domain"
)

var baseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Trail Runner", Brand: "Northpeak", Category: "shoes", Price: 120, Rating: 4.5, Availability: domain.AvailabilityInStock, DateAdded: baseTime.AddDate(0, 0, 5)},
		{ID: "2", Name: "City Sneaker", Brand: "Urbana", Category: "shoes", Price: 80, Rating: 3.8, Availability: domain.AvailabilityInStock, DateAdded: baseTime.AddDate(0, 0, 3)},
		{ID: "3", Name: "Rain Jacket", Brand: "Northpeak", Category: "outerwear", Price: 200, Rating: 4.9, Availability: domain.AvailabilityPreOrder, DateAdded: baseTime.AddDate(0, 0, 8)},
		{ID: "4", Name: "Wool Beanie", Brand: "Urbana", Category: "accessories", Price: 25, Rating: 4.1, Availability: domain.AvailabilityInStock, DateAdded: baseTime.AddDate(0, 0, 1)},
		{ID: "5", Name: "Canvas Tote", Brand: "Fieldcraft", Category: "accessories", Price: 35, Rating: 2.9, Availability: domain.AvailabilityInStock, DateAdded: baseTime.AddDate(0, 0, 6)},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	products := sampleProducts()

	t.Run("defaults admit everything", func(t *testing.T) {
		result := Apply(products, domain.DefaultCriteria(), 1)
		assert.Equal(t, 5, result.TotalItems)
		assert.Equal(t, 1, result.TotalPages)
	})

	t.Run("category", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Category = "shoes"
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"1", "2"}, ids(result.Visible))
	})

	t.Run("brand", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Brand = "Northpeak"
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"1", "3"}, ids(result.Visible))
	})

	t.Run("price range is inclusive", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.PriceMin = 25
		criteria.PriceMax = 80
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"2", "4", "5"}, ids(result.Visible))
	})

	t.Run("minimum rating", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.MinRating = 4.0
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"1", "3", "4"}, ids(result.Visible))
	})

	t.Run("availability", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Availability = string(domain.AvailabilityPreOrder)
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"3"}, ids(result.Visible))
	})

	t.Run("filters compose", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Brand = "Urbana"
		criteria.MinRating = 4.0
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"4"}, ids(result.Visible))
	})

	t.Run("no match is a valid empty view", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Category = "electronics"
		result := Apply(products, criteria, 1)
		assert.Empty(t, result.Visible)
		assert.Equal(t, 0, result.TotalItems)
		assert.Equal(t, 0, result.TotalPages)
	})
}

func TestApplySearch(t *testing.T) {
	products := sampleProducts()

	t.Run("matches name brand and category case-insensitively", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.SearchText = "NORTH"
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"1", "3"}, ids(result.Visible))

		criteria.SearchText = "accesso"
		result = Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"4", "5"}, ids(result.Visible))
	})

	t.Run("search ignores structured filters", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Category = "shoes"
		criteria.PriceMax = 1
		criteria.SearchText = "jacket"
		result := Apply(products, criteria, 1)
		assert.ElementsMatch(t, []string{"3"}, ids(result.Visible))
	})

	t.Run("search results are still sorted", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.SearchText = "a"
		criteria.SortBy = domain.SortPriceLow
		result := Apply(products, criteria, 1)
		for i := 1; i < len(result.Visible); i++ {
			assert.LessOrEqual(t, result.Visible[i-1].Price, result.Visible[i].Price)
		}
	})
}

func TestApplySort(t *testing.T) {
	products := sampleProducts()

	t.Run("newest first is the default", func(t *testing.T) {
		result := Apply(products, domain.DefaultCriteria(), 1)
		assert.Equal(t, []string{"3", "5", "1", "2", "4"}, ids(result.Visible))
	})

	t.Run("price low to high", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.SortBy = domain.SortPriceLow
		result := Apply(products, criteria, 1)
		assert.Equal(t, []string{"4", "5", "2", "1", "3"}, ids(result.Visible))
	})

	t.Run("price high to low", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.SortBy = domain.SortPriceHigh
		result := Apply(products, criteria, 1)
		assert.Equal(t, []string{"3", "1", "2", "5", "4"}, ids(result.Visible))
	})

	t.Run("rating high to low", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.SortBy = domain.SortRating
		result := Apply(products, criteria, 1)
		assert.Equal(t, []string{"3", "1", "4", "2", "5"}, ids(result.Visible))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		tied := []domain.Product{
			{ID: "a", Price: 50, DateAdded: baseTime},
			{ID: "b", Price: 50, DateAdded: baseTime},
			{ID: "c", Price: 50, DateAdded: baseTime},
		}
		criteria := domain.DefaultCriteria()
		criteria.SortBy = domain.SortPriceLow
		result := Apply(tied, criteria, 1)
		assert.Equal(t, []string{"a", "b", "c"}, ids(result.Visible))
	})
}

func TestApplyPagination(t *testing.T) {
	// 25 products: three pages of 12, 12 and 1
	var products []domain.Product
	for i := 1; i <= 25; i++ {
		products = append(products, domain.Product{
			ID:        fmt.Sprintf("p%02d", i),
			Name:      fmt.Sprintf("Item %02d", i),
			Price:     float64(i),
			DateAdded: baseTime.AddDate(0, 0, -i),
		})
	}

	criteria := domain.DefaultCriteria()
	criteria.SortBy = domain.SortPriceLow

	t.Run("pages partition the result without gaps or duplicates", func(t *testing.T) {
		seen := make(map[string]bool)
		for page := 1; page <= 3; page++ {
			result := Apply(products, criteria, page)
			assert.Equal(t, 3, result.TotalPages)
			assert.Equal(t, 25, result.TotalItems)
			for _, p := range result.Visible {
				assert.False(t, seen[p.ID], "product %s appeared twice", p.ID)
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 25)
	})

	t.Run("page sizes", func(t *testing.T) {
		assert.Len(t, Apply(products, criteria, 1).Visible, 12)
		assert.Len(t, Apply(products, criteria, 2).Visible, 12)
		assert.Len(t, Apply(products, criteria, 3).Visible, 1)
	})

	t.Run("page below 1 is treated as 1", func(t *testing.T) {
		result := Apply(products, criteria, 0)
		assert.Equal(t, 1, result.CurrentPage)
		require.Len(t, result.Visible, 12)
		assert.Equal(t, "p01", result.Visible[0].ID)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		result := Apply(products, criteria, 9)
		assert.Empty(t, result.Visible)
		assert.Equal(t, 3, result.TotalPages)
	})
}

func TestPageNumbers(t *testing.T) {
	t.Run("no pages", func(t *testing.T) {
		assert.Nil(t, PageNumbers(1, 0))
	})

	t.Run("seven or fewer pages show everything", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, PageNumbers(2, 3))
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, PageNumbers(7, 7))
	})

	t.Run("middle of a long strip elides both sides", func(t *testing.T) {
		assert.Equal(t, []int{1, PageGap, 8, 9, 10, 11, 12, PageGap, 20}, PageNumbers(10, 20))
	})

	t.Run("near the start only the tail is elided", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, PageGap, 20}, PageNumbers(2, 20))
	})

	t.Run("near the end only the head is elided", func(t *testing.T) {
		assert.Equal(t, []int{1, PageGap, 17, 18, 19, 20}, PageNumbers(19, 20))
	})

	t.Run("adjacent runs are not elided", func(t *testing.T) {
		// Page 4 of 8: pages 2..6 plus first and last, no gap before 2
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, PageGap, 8}, PageNumbers(4, 8))
	})

	t.Run("current is clamped into range", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, PageGap, 20}, PageNumbers(0, 20))
		assert.Equal(t, []int{1, PageGap, 18, 19, 20}, PageNumbers(99, 20))
	})
}
