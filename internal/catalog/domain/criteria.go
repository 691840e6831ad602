package domain

// SortOrder selects the ordering of a filtered catalog view
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

// FilterAll is the sentinel meaning "no restriction" for the category,
// brand and availability fields.
const FilterAll = "all"

// Default inclusive price bounds. The default range admits every product.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 1000
)

// FilterCriteria is the structured set of narrowing and ordering options
// for one catalog view. A non-empty SearchText supersedes every structured
// field: search mode and structured-filter mode are mutually exclusive
// branches.
type FilterCriteria struct {
	Category     string
	Brand        string
	PriceMin     float64
	PriceMax     float64
	MinRating    float64
	Availability string
	SortBy       SortOrder
	SearchText   string
}

// DefaultCriteria returns criteria that admit the full catalog, sorted
// newest first.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Category:     FilterAll,
		Brand:        FilterAll,
		PriceMin:     DefaultPriceMin,
		PriceMax:     DefaultPriceMax,
		MinRating:    0,
		Availability: FilterAll,
		SortBy:       SortNewest,
	}
}
