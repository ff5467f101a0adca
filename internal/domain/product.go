package domain

import "time"

// Category of produce a product belongs to.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryHerbs      Category = "herbs"
	CategoryGrains     Category = "grains"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
)

// Unit is the unit of measure a product is sold in.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitGram  Unit = "g"
	UnitLb    Unit = "lb"
	UnitOz    Unit = "oz"
	UnitPiece Unit = "piece"
	UnitDozen Unit = "dozen"
)

type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Category    Category  `bson:"category" json:"category"`
	Price       float64   `bson:"price" json:"price"`
	Unit        Unit      `bson:"unit" json:"unit"`
	Image       string    `bson:"image" json:"image"`
	Stock       float64   `bson:"stock" json:"stock"`
	Supplier    string    `bson:"supplier" json:"supplier"`
	Discount    float64   `bson:"discount" json:"discount"`
	Rating      float64   `bson:"rating" json:"rating"`
	IsActive    bool      `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// ProductSummary is the display projection attached to cart lines,
// the equivalent of populating name/price/image/category on reads.
type ProductSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Image    string   `json:"image"`
	Category Category `json:"category"`
	Unit     Unit     `json:"unit"`
}

func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Unit:     p.Unit,
	}
}
