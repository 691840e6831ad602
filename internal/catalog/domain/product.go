package domain

import "time"

// Availability of a catalog product
type Availability string

const (
	AvailabilityInStock  Availability = "in-stock"
	AvailabilityPreOrder Availability = "pre-order"
)

// Product is a read-only catalog entry as served by the product source.
// The filter pipeline treats it as an immutable value for the duration of
// one filtering pass.
type Product struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Brand        string       `json:"brand"`
	Category     string       `json:"category"`
	Description  string       `json:"description,omitempty"`
	Price        float64      `json:"price"`
	Rating       float64      `json:"rating"`
	ImageURL     string       `json:"image_url,omitempty"`
	Availability Availability `json:"availability"`
	DateAdded    time.Time    `json:"date_added"`
}
