package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry as served to the storefront. Price and
// OriginalPrice are decimal dollar amounts; OriginalPrice is only set
// for discounted items and is never below Price.
type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Price         float64            `json:"price" bson:"price"`
	OriginalPrice *float64           `json:"originalPrice,omitempty" bson:"original_price,omitempty"`
	Rating        float64            `json:"rating" bson:"rating"`
	Reviews       int                `json:"reviews" bson:"reviews"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	InStock       bool               `json:"inStock" bson:"in_stock"`
	StockQuantity int                `json:"stockQuantity" bson:"stock_quantity"`
	IsDeleted     bool               `json:"-" bson:"is_deleted"`
}

type NewProduct struct {
	Name          string   `json:"name" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Price         float64  `json:"price" binding:"min=0"`
	OriginalPrice *float64 `json:"originalPrice"`
	Rating        float64  `json:"rating" binding:"min=0,max=5"`
	Reviews       int      `json:"reviews" binding:"min=0"`
	InStock       bool     `json:"inStock"`
	StockQuantity int      `json:"stockQuantity" binding:"min=0"`
}

// UpdateProduct carries the patchable fields; nil means "leave as is".
type UpdateProduct struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Rating        *float64 `json:"rating"`
	Reviews       *int     `json:"reviews"`
	InStock       *bool    `json:"inStock"`
	StockQuantity *int     `json:"stockQuantity"`
}

func (u UpdateProduct) hasFields() bool {
	return u.Name != nil || u.Category != nil || u.Price != nil ||
		u.OriginalPrice != nil || u.Rating != nil || u.Reviews != nil ||
		u.InStock != nil || u.StockQuantity != nil
}
