package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product stock statuses. Status is settable independently of Quantity.
const (
	ProductInStock    = "in stock"
	ProductOutOfStock = "out of stock"
)

// Product represents a product in the store.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Image       string             `json:"image" bson:"image" validate:"required,url"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Price       float64            `json:"price" bson:"price" validate:"gte=0"`
	Quantity    int                `json:"quantity" bson:"quantity" validate:"gte=0"`
	Status      string             `json:"status" bson:"status" validate:"omitempty,oneof='in stock' 'out of stock'"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
