package query

import (
	"context"

	"github.com/glowmart/storefront/internal/catalog/domain"
	"github.com/glowmart/storefront/internal/catalog/pipeline"
	"github.com/glowmart/storefront/pkg/logger"
)

// ProductSource supplies the product snapshot the pipeline operates on
type ProductSource interface {
	Refresh(ctx context.Context) ([]domain.Product, error)
}

// BrowseCatalogQuery requests one filtered, sorted, paginated catalog view
type BrowseCatalogQuery struct {
	Criteria domain.FilterCriteria
	Page     int
}

// BrowseResult is the catalog view plus its pagination strip. SourceError
// is set when the product source could not be reached: the view is then
// empty but still valid, never an error.
type BrowseResult struct {
	Products    []domain.Product `json:"products"`
	CurrentPage int              `json:"current_page"`
	TotalPages  int              `json:"total_pages"`
	TotalItems  int              `json:"total_items"`
	Pages       []int            `json:"pages"`
	SourceError string           `json:"source_error,omitempty"`
}

// BrowseCatalogHandler handles the browse catalog query
type BrowseCatalogHandler struct {
	source ProductSource
}

// NewBrowseCatalogHandler creates a new browse catalog handler
func NewBrowseCatalogHandler(source ProductSource) *BrowseCatalogHandler {
	return &BrowseCatalogHandler{source: source}
}

// Handle executes the browse catalog query. The snapshot is fetched once
// per query and treated as immutable for the filtering pass.
func (h *BrowseCatalogHandler) Handle(ctx context.Context, q BrowseCatalogQuery) *BrowseResult {
	products, err := h.source.Refresh(ctx)
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Msg("Product source unavailable, serving empty catalog")
		return &BrowseResult{
			Products:    []domain.Product{},
			CurrentPage: 1,
			Pages:       []int{},
			SourceError: "product source unavailable",
		}
	}

	result := pipeline.Apply(products, q.Criteria, q.Page)

	view := &BrowseResult{
		Products:    result.Visible,
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		TotalItems:  result.TotalItems,
		Pages:       pipeline.PageNumbers(result.CurrentPage, result.TotalPages),
	}
	if view.Products == nil {
		view.Products = []domain.Product{}
	}
	if view.Pages == nil {
		view.Pages = []int{}
	}
	return view
}
