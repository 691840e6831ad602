package query

import (
	"context"
	"fmt"

	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/cart/domain"
)

// GetCartQuery fetches a session's cart with derived aggregates
type GetCartQuery struct {
	SessionID string
}

// CartView is the cart plus its derived aggregates, computed fresh from
// the row list at read time.
type CartView struct {
	Items []domain.LineItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// GetCartHandler handles the get cart query
type GetCartHandler struct {
	store *cart.Store
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(store *cart.Store) *GetCartHandler {
	return &GetCartHandler{store: store}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*CartView, error) {
	if q.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	c := h.store.Get(ctx, q.SessionID)
	view := &CartView{
		Items: c.Items,
		Total: c.Total(),
		Count: c.Count(),
	}
	if view.Items == nil {
		view.Items = []domain.LineItem{}
	}
	return view, nil
}
