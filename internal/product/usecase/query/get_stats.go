package query

import (
	"fmt"

	"github.com/glowmart/storefront/internal/product/domain"
)

// GetStatsQuery represents the query to get product statistics
type GetStatsQuery struct{}

// ProductStats represents product statistics for the admin dashboard
type ProductStats struct {
	TotalProducts  int64   `json:"total_products"`
	ActiveProducts int64   `json:"active_products"`
	TotalStock     int64   `json:"total_stock"`
	AveragePrice   float64 `json:"average_price"`
	AverageRating  float64 `json:"average_rating"`
	Categories     int64   `json:"categories"`
	Brands         int64   `json:"brands"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*ProductStats, error) {
	totalProducts, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to get product count: %w", err)
	}

	products, err := h.repo.FindAll(10000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	var activeProducts int64
	var totalStock int64
	var totalPrice float64
	var totalRating float64
	categories := make(map[string]bool)
	brands := make(map[string]bool)

	for _, product := range products {
		if product.IsActive {
			activeProducts++
		}
		totalStock += int64(product.Stock)
		totalPrice += product.Price
		totalRating += product.Rating
		if product.Category != "" {
			categories[product.Category] = true
		}
		if product.Brand != "" {
			brands[product.Brand] = true
		}
	}

	averagePrice := 0.0
	averageRating := 0.0
	if len(products) > 0 {
		averagePrice = totalPrice / float64(len(products))
		averageRating = totalRating / float64(len(products))
	}

	return &ProductStats{
		TotalProducts:  totalProducts,
		ActiveProducts: activeProducts,
		TotalStock:     totalStock,
		AveragePrice:   averagePrice,
		AverageRating:  averageRating,
		Categories:     int64(len(categories)),
		Brands:         int64(len(brands)),
	}, nil
}
