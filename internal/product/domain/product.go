package domain

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Product availability states exposed to the storefront
const (
	AvailabilityInStock  = "in-stock"
	AvailabilityPreOrder = "pre-order"
)

// Product represents the product entity managed by the admin dashboard
type Product struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Brand        string         `json:"brand" gorm:"index"`
	Description  string         `json:"description"`
	Price        float64        `json:"price" gorm:"not null"`
	Rating       float64        `json:"rating" gorm:"default:0"`
	Stock        int            `json:"stock" gorm:"not null;default:0"`
	Category     string         `json:"category" gorm:"index"`
	SKU          string         `json:"sku" gorm:"uniqueIndex"`
	ImageURL     string         `json:"image_url"`
	Availability string         `json:"availability" gorm:"default:in-stock"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if product can be added to a cart
func (p *Product) IsAvailable() bool {
	return p.IsActive && (p.Stock > 0 || p.Availability == AvailabilityPreOrder)
}

// CatalogItem is the public read model served to the storefront catalog.
// The identifier is opaque to consumers; date_added is the creation time.
type CatalogItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Rating       float64   `json:"rating"`
	ImageURL     string    `json:"image_url,omitempty"`
	Availability string    `json:"availability"`
	DateAdded    time.Time `json:"date_added"`
}

// ToCatalogItem maps a product row to its public catalog form
func (p *Product) ToCatalogItem() CatalogItem {
	availability := p.Availability
	if availability == "" {
		availability = AvailabilityInStock
	}
	return CatalogItem{
		ID:           strconv.FormatUint(uint64(p.ID), 10),
		Name:         p.Name,
		Brand:        p.Brand,
		Category:     p.Category,
		Description:  p.Description,
		Price:        p.Price,
		Rating:       p.Rating,
		ImageURL:     p.ImageURL,
		Availability: availability,
		DateAdded:    p.CreatedAt,
	}
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(category string, limit, offset int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
	UpdateStock(id uint, stock int) error
	DecrementStock(id uint, quantity int) error
}
