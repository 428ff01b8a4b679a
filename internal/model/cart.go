package model

import "time"

// Cart holds a user's line items between sessions. It lives in the cart
// store keyed by uid and is mutated only through the methods below.
type Cart struct {
	UID       string     `json:"uid"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is a line item with display fields denormalized from the product
// so the cart renders without a catalogue round trip.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem adds a line item, merging quantities when the product is already
// present.
func (c *Cart) AddItem(item CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// SetQuantity sets the quantity of an existing line item. A quantity of zero
// removes the item; negative quantities are rejected.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		c.RemoveItems(productID)
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrProductNotFound
}

// RemoveItems drops the line items for the given product ids. Unknown ids
// are ignored so post-checkout clearing is idempotent.
func (c *Cart) RemoveItems(productIDs ...string) {
	drop := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		drop[id] = struct{}{}
	}
	kept := c.Items[:0]
	for _, item := range c.Items {
		if _, gone := drop[item.ProductID]; !gone {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// ProductIDs returns the product ids of the given line items, in order.
func ProductIDs[T CartItem | OrderItem](items []T) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		switch v := any(item).(type) {
		case CartItem:
			ids[i] = v.ProductID
		case OrderItem:
			ids[i] = v.ProductID
		}
	}
	return ids
}
