package command

import (
	"fmt"
	"strconv"

	"github.com/glowmart/storefront/internal/product/domain"
)

// DeductStockCommand reduces stock for one purchased line. The product is
// addressed by its opaque catalog identifier as carried in checkout events.
type DeductStockCommand struct {
	ProductID string
	Quantity  int
}

// DeductStockHandler handles stock deduction driven by checkout events
type DeductStockHandler struct {
	repo domain.ProductRepository
}

// NewDeductStockHandler creates a new deduct stock handler
func NewDeductStockHandler(repo domain.ProductRepository) *DeductStockHandler {
	return &DeductStockHandler{repo: repo}
}

// Handle executes the deduct stock command
func (h *DeductStockHandler) Handle(cmd DeductStockCommand) error {
	id, err := strconv.ParseUint(cmd.ProductID, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", cmd.ProductID, err)
	}
	if cmd.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	if err := h.repo.DecrementStock(uint(id), cmd.Quantity); err != nil {
		return fmt.Errorf("failed to deduct stock: %w", err)
	}

	return nil
}
