package command

import (
	"context"
	"fmt"

	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/cart/domain"
	"github.com/glowmart/storefront/pkg/logger"
)

// UpdateQuantityCommand replaces the quantity of an existing cart row
type UpdateQuantityCommand struct {
	SessionID  string
	ProductID  string
	VariantKey string
	Quantity   int
}

// UpdateQuantityHandler handles the update quantity command
type UpdateQuantityHandler struct {
	store *cart.Store
}

// NewUpdateQuantityHandler creates a new update quantity handler
func NewUpdateQuantityHandler(store *cart.Store) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{store: store}
}

// Handle executes the update quantity command. A quantity below 1 is
// silently ignored and the cart is returned unchanged: setting zero does
// not remove the row, callers must issue an explicit remove.
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) (*domain.Cart, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	if cmd.Quantity < 1 {
		logger.Logger.Debug().
			Str("product_id", cmd.ProductID).
			Int("quantity", cmd.Quantity).
			Msg("Ignoring quantity update below 1")
		return h.store.Get(ctx, cmd.SessionID), nil
	}

	c := h.store.Mutate(ctx, cmd.SessionID, func(c *domain.Cart) {
		c.UpdateQuantity(cmd.ProductID, cmd.VariantKey, cmd.Quantity)
	})
	return c, nil
}
