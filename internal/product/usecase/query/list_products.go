package query

import (
	"fmt"

	"github.com/glowmart/storefront/internal/product/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit    int
	Offset   int
	Category string // Optional: filter by category
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query and returns the public catalog
// read models for active products.
func (h *ListProductsHandler) Handle(query ListProductsQuery) ([]domain.CatalogItem, error) {
	var products []domain.Product
	var err error

	// Set defaults
	if query.Limit <= 0 {
		query.Limit = 500
	}

	if query.Category != "" {
		products, err = h.repo.FindByCategory(query.Category, query.Limit, query.Offset)
	} else {
		products, err = h.repo.FindAll(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(products))
	for i := range products {
		if !products[i].IsActive {
			continue
		}
		items = append(items, products[i].ToCatalogItem())
	}
	return items, nil
}
