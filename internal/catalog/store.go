package catalog

import (
	"context"
	"errors"

	"github.com/fjod/go_supply/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store is the catalog boundary. The cart engine only reads from it;
// checkout reconciliation is the sole writer, and only of stock.
type Store interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// GetProducts returns the products found for the given ids, keyed by id.
	// Missing ids are simply absent from the map.
	GetProducts(ctx context.Context, ids []string) (map[string]*domain.Product, error)

	ListProducts(ctx context.Context) ([]*domain.Product, error)

	UpsertProduct(ctx context.Context, product *domain.Product) error

	// DecrementStock atomically decrements stock by amount, conditional on
	// enough stock being available, and returns the remaining stock.
	// Returns ErrProductNotFound or ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id string, amount float64) (float64, error)
}
