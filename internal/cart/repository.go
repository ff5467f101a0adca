package cart

import (
	"context"
	"errors"

	"github.com/fjod/go_supply/internal/domain"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrVersionConflict = errors.New("cart was modified concurrently")
)

// Repository defines the interface for cart data operations
// Consumers define this interface, not the MongoDB implementation
type Repository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)

	// SaveCart persists the cart conditional on cart.Version matching the
	// stored document (insert for Version == 0). On success the version is
	// bumped; on a lost race it returns ErrVersionConflict and the caller
	// re-reads and retries.
	SaveCart(ctx context.Context, cart *domain.Cart) error

	DeleteCart(ctx context.Context, sessionID string) error
}
