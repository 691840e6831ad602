package command

import (
	"context"
	"fmt"

	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/cart/domain"
)

// RemoveItemCommand deletes the matching cart row if present
type RemoveItemCommand struct {
	SessionID  string
	ProductID  string
	VariantKey string
}

// RemoveItemHandler handles the remove item command
type RemoveItemHandler struct {
	store *cart.Store
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(store *cart.Store) *RemoveItemHandler {
	return &RemoveItemHandler{store: store}
}

// Handle executes the remove item command. Removing an absent row is a
// no-op, not an error.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*domain.Cart, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	c := h.store.Mutate(ctx, cmd.SessionID, func(c *domain.Cart) {
		c.RemoveItem(cmd.ProductID, cmd.VariantKey)
	})
	return c, nil
}
