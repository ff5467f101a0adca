package domain

import "time"

// CheckoutItem is a transient (productId, quantity) pair submitted for
// reconciliation. It is never persisted.
type CheckoutItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// CheckoutItemStatus is the terminal state of a single checkout item.
type CheckoutItemStatus string

const (
	CheckoutItemPending   CheckoutItemStatus = "pending"
	CheckoutItemCommitted CheckoutItemStatus = "committed"
	CheckoutItemRejected  CheckoutItemStatus = "rejected"
)

// Per-item error codes collected during reconciliation.
const (
	CheckoutErrInvalidItem       = "invalid_item"
	CheckoutErrProductNotFound   = "product_not_found"
	CheckoutErrInsufficientStock = "insufficient_stock"
	CheckoutErrInternal          = "internal_error"
)

type CheckoutItemResult struct {
	ProductID      string             `json:"productId"`
	Name           string             `json:"name"`
	Quantity       float64            `json:"quantity"`
	RemainingStock float64            `json:"remainingStock"`
	Status         CheckoutItemStatus `json:"status"`
}

type CheckoutItemError struct {
	ProductID string  `json:"productId"`
	Code      string  `json:"code"`
	Message   string  `json:"message"`
	Requested float64 `json:"requested,omitempty"`
	Available float64 `json:"available,omitempty"`
}

// CheckoutResult reports the outcome of one reconciliation batch.
// Success is true when at least one item committed; earlier commits are
// not rolled back when later items fail.
type CheckoutResult struct {
	CheckoutID string               `json:"checkoutId"`
	Success    bool                 `json:"success"`
	Results    []CheckoutItemResult `json:"results"`
	Errors     []CheckoutItemError  `json:"errors"`
}

// CheckoutCompletedEvent is published after a batch with at least one
// committed item, so the session's cart can be cleared downstream.
type CheckoutCompletedEvent struct {
	CheckoutID  string               `json:"checkout_id"`
	SessionID   string               `json:"session_id"`
	Items       []CheckoutItemResult `json:"items"`
	CompletedAt time.Time            `json:"completed_at"`
}
