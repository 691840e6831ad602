package kafka

import "time"

// CheckoutLineItem is one purchased cart row inside a checkout event.
type CheckoutLineItem struct {
	ProductID  string  `json:"product_id"`
	VariantKey string  `json:"variant_key,omitempty"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// CheckoutCompletedEvent is published when a session completes checkout.
// Downstream consumers (the product service stock adjuster) act on it.
type CheckoutCompletedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	OrderID   string             `json:"order_id"`
	SessionID string             `json:"session_id"`
	Items     []CheckoutLineItem `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
	Timestamp time.Time          `json:"timestamp"`
}

// Event types
const (
	EventTypeCheckoutCompleted = "checkout.completed"
)

// Kafka topics
const (
	TopicCheckoutCompleted = "checkout-completed"
)
