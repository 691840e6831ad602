package pipeline

import (
	"sort"
	"strings"

	"github.com/glowmart/storefront/internal/catalog/domain"
)

// PageSize is the fixed number of products per catalog page
const PageSize = 12

// Result is one paginated catalog view
type Result struct {
	Visible     []domain.Product
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// Apply runs the filter, sort and paginate pipeline over a product
// snapshot. When SearchText is non-empty the full snapshot is searched by
// name, brand and category (case-insensitive substring match) and every
// structured filter is skipped. Otherwise the structured filters narrow
// the snapshot in sequence. The result is stably sorted by SortBy, so
// ties retain their input order.
//
// page is 1-indexed; values below 1 are treated as 1 and a page past the
// end yields an empty visible slice. An empty result set is a valid
// terminal state with TotalPages of 0.
func Apply(products []domain.Product, criteria domain.FilterCriteria, page int) Result {
	var filtered []domain.Product
	if criteria.SearchText != "" {
		filtered = search(products, criteria.SearchText)
	} else {
		filtered = filter(products, criteria)
	}

	sortProducts(filtered, criteria.SortBy)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return Result{
		Visible:     filtered[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
}

func search(products []domain.Product, text string) []domain.Product {
	needle := strings.ToLower(text)
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

func filter(products []domain.Product, c domain.FilterCriteria) []domain.Product {
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchesValue(c.Category, p.Category) {
			continue
		}
		if !matchesValue(c.Brand, p.Brand) {
			continue
		}
		if c.MinRating > 0 && p.Rating < c.MinRating {
			continue
		}
		// The price range is always applied; the default bounds admit everything
		if p.Price < c.PriceMin || p.Price > c.PriceMax {
			continue
		}
		if !matchesValue(c.Availability, string(p.Availability)) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// matchesValue treats an empty criterion the same as the "all" sentinel
func matchesValue(criterion, value string) bool {
	return criterion == "" || criterion == domain.FilterAll || criterion == value
}

func sortProducts(products []domain.Product, order domain.SortOrder) {
	switch order {
	case domain.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case domain.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// newest first
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DateAdded.After(products[j].DateAdded)
		})
	}
}
