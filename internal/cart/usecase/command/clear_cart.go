package command

import (
	"context"
	"fmt"

	"github.com/glowmart/storefront/internal/cart"
)

// ClearCartCommand drops every row from a session's cart
type ClearCartCommand struct {
	SessionID string
}

// ClearCartHandler handles the clear cart command
type ClearCartHandler struct {
	store *cart.Store
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(store *cart.Store) *ClearCartHandler {
	return &ClearCartHandler{store: store}
}

// Handle executes the clear cart command
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if cmd.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	h.store.Drop(ctx, cmd.SessionID)
	return nil
}
