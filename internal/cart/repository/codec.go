package repository

import (
	"encoding/json"
	"fmt"

	"github.com/glowmart/storefront/internal/cart/domain"
)

// EncodeCart serializes a cart for storage. The encoding is stable:
// encode, decode and encode again yield identical bytes.
func EncodeCart(cart *domain.Cart) ([]byte, error) {
	data, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// DecodeCart parses a stored cart, rejecting payloads that do not match
// the expected structure.
func DecodeCart(data []byte) (*domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("malformed cart payload: %w", err)
	}
	return &cart, nil
}
