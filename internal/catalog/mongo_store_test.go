package catalog

import (
	"context"
	"testing"

	"github.com/fjod/go_supply/internal/domain"
	"github.com/fjod/go_supply/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestStore(t *testing.T) (*MongoStore, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := storage.ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	store := NewMongoStore(db)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func seedProduct(t *testing.T, store *MongoStore, id string, stock float64) {
	t.Helper()
	err := store.UpsertProduct(context.Background(), &domain.Product{
		ID:       id,
		Name:     "Premium Organic Tomatoes",
		Category: domain.CategoryVegetables,
		Price:    12.99,
		Unit:     domain.UnitKg,
		Stock:    stock,
		IsActive: true,
	})
	require.NoError(t, err)
}

func TestGetProduct_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProducts_SkipsMissingIDs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedProduct(t, store, "p1", 10)
	seedProduct(t, store, "p2", 20)

	products, err := store.GetProducts(ctx, []string{"p1", "p2", "ghost"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Contains(t, products, "p1")
	assert.Contains(t, products, "p2")
}

func TestDecrementStock_Succeeds(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedProduct(t, store, "p1", 10)

	remaining, err := store.DecrementStock(ctx, "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 6.0, remaining)

	p, err := store.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 6.0, p.Stock)
}

func TestDecrementStock_ExactRemainderToZero(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedProduct(t, store, "p1", 5)

	remaining, err := store.DecrementStock(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestDecrementStock_Insufficient(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedProduct(t, store, "p1", 2)

	_, err := store.DecrementStock(ctx, "p1", 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Stock must stay untouched.
	p, err := store.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Stock)
}

func TestDecrementStock_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.DecrementStock(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts_OnlyActive(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seedProduct(t, store, "p1", 10)
	err := store.UpsertProduct(ctx, &domain.Product{
		ID:       "p2",
		Name:     "Discontinued Kale",
		Category: domain.CategoryVegetables,
		Price:    4.00,
		Unit:     domain.UnitKg,
		Stock:    0,
		IsActive: false,
	})
	require.NoError(t, err)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}
