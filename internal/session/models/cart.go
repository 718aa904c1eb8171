package models

// CartItem is a product snapshot copied into the cart at add time. It is a
// copy, not a reference: later catalog changes must not affect items already
// in a cart.
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

// Cart is an append-only (until cleared) ordered ledger of added products.
// Duplicates are allowed: adding the same product twice yields two entries.
type Cart struct {
	items []CartItem
}

// Add appends a snapshot to the ledger. It always succeeds.
func (c *Cart) Add(item CartItem) {
	c.items = append(c.items, item)
}

// Clear empties the ledger. Called only by logout.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the ledger in insertion order.
func (c *Cart) Items() []CartItem {
	return append([]CartItem(nil), c.items...)
}

// Len returns the number of entries.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total is the sum of entry prices, recomputed on every read. An empty
// ledger totals zero.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Price
	}
	return total
}
