package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fjod/go_supply/internal/catalog"
	"github.com/fjod/go_supply/internal/domain"
	"github.com/fjod/go_supply/internal/storage"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDBName := getEnv("MONGO_DB_NAME", "supplydb")

	ctx := context.Background()
	mongoDB, err := storage.ConnectMongoDB(ctx, mongoURI, mongoDBName)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer mongoDB.Client().Disconnect(ctx)

	store := catalog.NewMongoStore(mongoDB)

	for _, p := range sampleProducts() {
		if err := store.UpsertProduct(ctx, p); err != nil {
			logrus.WithError(err).WithField("product", p.Name).Fatal("failed to seed product")
		}
		logrus.WithFields(logrus.Fields{"id": p.ID, "product": p.Name}).Info("seeded")
	}
}

func sampleProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Premium Organic Tomatoes",
			Description: "Fresh, vine-ripened organic tomatoes perfect for cooking and salads",
			Category:    domain.CategoryVegetables,
			Price:       12.99,
			Unit:        domain.UnitKg,
			Image:       "https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg",
			Stock:       100,
			Supplier:    "Green Valley Farms",
			Discount:    15,
			Rating:      4.5,
			IsActive:    true,
		},
		{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Fresh Green Lettuce",
			Description: "Crisp and fresh green lettuce leaves, perfect for salads",
			Category:    domain.CategoryVegetables,
			Price:       8.50,
			Unit:        domain.UnitKg,
			Image:       "https://images.unsplash.com/photo-1622206151226-18ca2c9ab4a1",
			Stock:       75,
			Supplier:    "Green Valley Farms",
			Rating:      4.2,
			IsActive:    true,
		},
		{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Organic Carrots Bundle",
			Description: "Sweet and crunchy organic carrots, great for cooking and snacking",
			Category:    domain.CategoryVegetables,
			Price:       6.75,
			Unit:        domain.UnitKg,
			Image:       "https://images.pexels.com/photos/143133/pexels-photo-143133.jpeg",
			Stock:       120,
			Supplier:    "Green Valley Farms",
			Discount:    10,
			Rating:      4.8,
			IsActive:    true,
		},
		{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Fresh Bell Peppers Mix",
			Description: "Colorful mix of fresh bell peppers - red, yellow, and green",
			Category:    domain.CategoryVegetables,
			Price:       15.20,
			Unit:        domain.UnitKg,
			Image:       "https://images.pexels.com/photos/594137/pexels-photo-594137.jpeg",
			Stock:       60,
			Supplier:    "Sunrise Produce",
			Rating:      4.4,
			IsActive:    true,
		},
		{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Organic Basil Herbs",
			Description: "Fresh organic basil leaves with intense flavor and aroma",
			Category:    domain.CategoryHerbs,
			Price:       3.75,
			Unit:        domain.UnitGram,
			Image:       "https://images.pexels.com/photos/4198105/pexels-photo-4198105.jpeg",
			Stock:       200,
			Supplier:    "Herb Haven",
			Rating:      4.9,
			IsActive:    true,
		},
		{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Sweet Red Apples",
			Description: "Crisp and sweet red apples, perfect for snacking and baking",
			Category:    domain.CategoryFruits,
			Price:       11.50,
			Unit:        domain.UnitKg,
			Image:       "https://images.pexels.com/photos/102104/pexels-photo-102104.jpeg",
			Stock:       90,
			Supplier:    "Green Valley Farms",
			Rating:      4.7,
			IsActive:    true,
		},
	}
}
