package command

import (
	"context"
	"fmt"

	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/cart/domain"
)

// AddItemCommand adds a quantity of a product, optionally a specific
// variant, to a session's cart. Display fields are captured as they are
// at this instant.
type AddItemCommand struct {
	SessionID  string
	ProductID  string
	VariantKey string
	Name       string
	UnitPrice  float64
	ImageRef   string
	Quantity   int
}

// AddItemHandler handles the add item command
type AddItemHandler struct {
	store *cart.Store
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(store *cart.Store) *AddItemHandler {
	return &AddItemHandler{store: store}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.Cart, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if cmd.UnitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	c := h.store.Mutate(ctx, cmd.SessionID, func(c *domain.Cart) {
		c.AddItem(domain.LineItem{
			ProductID:  cmd.ProductID,
			VariantKey: cmd.VariantKey,
			Name:       cmd.Name,
			UnitPrice:  cmd.UnitPrice,
			ImageRef:   cmd.ImageRef,
			Quantity:   cmd.Quantity,
		})
	})
	return c, nil
}
