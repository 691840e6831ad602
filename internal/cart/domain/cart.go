package domain

import "context"

// LineItem is one row in a cart, keyed by product identity plus an
// optional variant discriminator (for example a size). Display fields are
// captured at add time and not re-synced with the catalog afterwards.
type LineItem struct {
	ProductID  string  `json:"product_id"`
	VariantKey string  `json:"variant_key,omitempty"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	ImageRef   string  `json:"image_ref,omitempty"`
	Quantity   int     `json:"quantity"`
}

// Matches reports whether the item occupies the (productID, variantKey) slot
func (li LineItem) Matches(productID, variantKey string) bool {
	return li.ProductID == productID && li.VariantKey == variantKey
}

// Subtotal is unit price times quantity
func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Cart holds the line items for one browsing session. At most one LineItem
// exists per (productID, variantKey) slot: adding into an occupied slot
// increments its quantity instead of appending a duplicate row.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddItem merges quantity into an existing slot or appends a new row.
// A requested quantity below 1 is clamped to 1 so a zero or negative
// quantity row can never be created.
func (c *Cart) AddItem(item LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Matches(item.ProductID, item.VariantKey) {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the matching slot. Removing an absent slot is a no-op,
// not an error.
func (c *Cart) RemoveItem(productID, variantKey string) {
	for i := range c.Items {
		if c.Items[i].Matches(productID, variantKey) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the matching slot. A quantity
// below 1 is silently ignored: callers must use RemoveItem to delete a
// row, setting zero does not remove it.
func (c *Cart) UpdateQuantity(productID, variantKey string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.Items {
		if c.Items[i].Matches(productID, variantKey) {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Total is the sum of unit price times quantity over all rows, recomputed
// from the item list on every call so it can never drift from the rows.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Count is the sum of quantities over all rows
func (c *Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Clone returns a detached copy whose item list shares no storage with
// the original.
func (c *Cart) Clone() *Cart {
	clone := &Cart{}
	if len(c.Items) > 0 {
		clone.Items = make([]LineItem, len(c.Items))
		copy(clone.Items, c.Items)
	}
	return clone
}

// IsEmpty reports whether the cart has no rows
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear drops every row
func (c *Cart) Clear() {
	c.Items = nil
}

// CartRepository is the durable store for serialized carts, one entry per
// session. Load returns (nil, nil) when no cart is stored or when the
// stored payload is malformed; only storage failures are reported as
// errors.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}
