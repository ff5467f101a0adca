package domain

import "time"

// CartItem is one product-quantity line inside a cart. TotalPrice is a
// snapshot of quantity * unit price taken at the last write to this line;
// it is not refreshed when the catalog price changes afterwards.
type CartItem struct {
	ProductID  string          `bson:"product_id" json:"productId"`
	Quantity   float64         `bson:"quantity" json:"quantity"`
	TotalPrice float64         `bson:"total_price" json:"totalPrice"`
	AddedAt    time.Time       `bson:"added_at" json:"addedAt"`
	Product    *ProductSummary `bson:"-" json:"product,omitempty"`
}

// Cart is keyed by an opaque session identifier; guest carts are first-class.
// Version backs the optimistic concurrency check in the repository.
type Cart struct {
	ID          string     `bson:"_id,omitempty" json:"-"`
	SessionID   string     `bson:"session_id" json:"sessionId"`
	Items       []CartItem `bson:"items" json:"items"`
	TotalAmount float64    `bson:"total_amount" json:"totalAmount"`
	TotalItems  float64    `bson:"total_items" json:"totalItems"`
	Version     int64      `bson:"version" json:"-"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Recalculate rebuilds both aggregates from the current lines. Mutations
// always re-aggregate in full rather than adjusting incrementally, so the
// totals can never drift from the lines.
func (c *Cart) Recalculate() {
	var amount, items float64
	for _, item := range c.Items {
		amount += item.TotalPrice
		items += item.Quantity
	}
	c.TotalAmount = amount
	c.TotalItems = items
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
