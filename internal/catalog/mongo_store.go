package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_supply/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection("products"),
	}
}

func (m *MongoStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product

	filter := bson.M{"_id": id}
	err := m.collection.FindOne(ctx, filter).Decode(&product)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (m *MongoStore) GetProducts(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make(map[string]*domain.Product, len(ids))
	for cursor.Next(ctx) {
		p := &domain.Product{}
		if err := cursor.Decode(p); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products[p.ID] = p
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration error: %w", err)
	}

	return products, nil
}

func (m *MongoStore) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := m.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	for cursor.Next(ctx) {
		p := &domain.Product{}
		if err := cursor.Decode(p); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, p)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration error: %w", err)
	}

	return products, nil
}

func (m *MongoStore) UpsertProduct(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	filter := bson.M{"_id": product.ID}
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price":       product.Price,
		"unit":        product.Unit,
		"image":       product.Image,
		"stock":       product.Stock,
		"supplier":    product.Supplier,
		"discount":    product.Discount,
		"rating":      product.Rating,
		"is_active":   product.IsActive,
		"created_at":  product.CreatedAt,
		"updated_at":  product.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// DecrementStock combines the stock check and the decrement into one
// conditional update so concurrent checkouts for the same product cannot
// drive stock negative.
func (m *MongoStore) DecrementStock(ctx context.Context, id string, amount float64) (float64, error) {
	filter := bson.M{
		"_id":   id,
		"stock": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -amount},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product domain.Product
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err == nil {
		return product.Stock, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("failed to decrement stock: %w", err)
	}

	// No match: either the product is gone or the stock ran short.
	count, countErr := m.collection.CountDocuments(ctx, bson.M{"_id": id})
	if countErr != nil {
		return 0, fmt.Errorf("failed to check product existence: %w", countErr)
	}
	if count == 0 {
		return 0, ErrProductNotFound
	}
	return 0, ErrInsufficientStock
}
