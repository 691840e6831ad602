package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/kafka"
	"github.com/glowmart/storefront/pkg/logger"
)

// EventPublisher publishes checkout events to the message broker
type EventPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, event kafka.CheckoutCompletedEvent) error
}

// CheckoutCommand completes checkout for a session: the cart is emptied
// and a checkout event is emitted for downstream consumers.
type CheckoutCommand struct {
	SessionID string
}

// CheckoutResult summarizes the completed order
type CheckoutResult struct {
	OrderID   string  `json:"order_id"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// CheckoutHandler handles the checkout command
type CheckoutHandler struct {
	store     *cart.Store
	publisher EventPublisher
}

// NewCheckoutHandler creates a new checkout handler. publisher may be nil
// when no broker is configured; checkout then completes without emitting
// an event.
func NewCheckoutHandler(store *cart.Store, publisher EventPublisher) *CheckoutHandler {
	return &CheckoutHandler{store: store, publisher: publisher}
}

// Handle executes the checkout command
func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	// Take is atomic, so a double-submitted checkout settles exactly once:
	// the second submission finds an empty cart.
	c := h.store.Take(ctx, cmd.SessionID)
	if c.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	result := &CheckoutResult{
		OrderID:   uuid.NewString(),
		Total:     c.Total(),
		ItemCount: c.Count(),
	}

	if h.publisher != nil {
		event := kafka.CheckoutCompletedEvent{
			OrderID:   result.OrderID,
			SessionID: cmd.SessionID,
			Total:     result.Total,
			ItemCount: result.ItemCount,
		}
		for _, item := range c.Items {
			event.Items = append(event.Items, kafka.CheckoutLineItem{
				ProductID:  item.ProductID,
				VariantKey: item.VariantKey,
				UnitPrice:  item.UnitPrice,
				Quantity:   item.Quantity,
			})
		}

		if err := h.publisher.PublishCheckoutCompleted(ctx, event); err != nil {
			// The order still completes; stock reconciliation catches up later
			logger.Logger.Error().
				Err(err).
				Str("order_id", result.OrderID).
				Msg("Failed to publish checkout event")
		}
	}

	return result, nil
}
