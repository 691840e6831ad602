package http

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowmart/storefront/internal/catalog/domain"
)

func TestParseCriteria(t *testing.T) {
	t.Run("defaults when no parameters", func(t *testing.T) {
		criteria, page := ParseCriteria(url.Values{})
		assert.Equal(t, domain.DefaultCriteria(), criteria)
		assert.Equal(t, 1, page)
	})

	t.Run("all parameters", func(t *testing.T) {
		values := url.Values{}
		values.Set("category", "shoes")
		values.Set("brand", "Northpeak")
		values.Set("price_min", "10")
		values.Set("price_max", "250")
		values.Set("min_rating", "4")
		values.Set("availability", "pre-order")
		values.Set("sort", "price-low")
		values.Set("search", "runner")
		values.Set("page", "3")

		criteria, page := ParseCriteria(values)
		assert.Equal(t, "shoes", criteria.Category)
		assert.Equal(t, "Northpeak", criteria.Brand)
		assert.Equal(t, 10.0, criteria.PriceMin)
		assert.Equal(t, 250.0, criteria.PriceMax)
		assert.Equal(t, 4.0, criteria.MinRating)
		assert.Equal(t, "pre-order", criteria.Availability)
		assert.Equal(t, domain.SortPriceLow, criteria.SortBy)
		assert.Equal(t, "runner", criteria.SearchText)
		assert.Equal(t, 3, page)
	})

	t.Run("unparseable values fall back to defaults", func(t *testing.T) {
		values := url.Values{}
		values.Set("price_min", "cheap")
		values.Set("price_max", "expensive")
		values.Set("min_rating", "good")
		values.Set("sort", "sideways")
		values.Set("page", "-2")

		criteria, page := ParseCriteria(values)
		assert.Equal(t, float64(domain.DefaultPriceMin), criteria.PriceMin)
		assert.Equal(t, float64(domain.DefaultPriceMax), criteria.PriceMax)
		assert.Equal(t, 0.0, criteria.MinRating)
		assert.Equal(t, domain.SortNewest, criteria.SortBy)
		assert.Equal(t, 1, page)
	})

	t.Run("each sort order is recognized", func(t *testing.T) {
		for _, order := range []domain.SortOrder{domain.SortNewest, domain.SortPriceLow, domain.SortPriceHigh, domain.SortRating} {
			values := url.Values{}
			values.Set("sort", string(order))
			criteria, _ := ParseCriteria(values)
			assert.Equal(t, order, criteria.SortBy)
		}
	})
}
