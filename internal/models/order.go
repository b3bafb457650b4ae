package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Only the cancelled transition has a handler; pending is the
// default on creation and the remaining states belong to an external
// payment/fulfillment process writing to the same collection.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderItem is a line item embedded in an order. Name and Price are captured
// at order time so historical orders are decoupled from later product edits.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id" validate:"required"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Price     float64            `json:"price" bson:"price" validate:"gte=0"`
	Quantity  int                `json:"quantity" bson:"quantity" validate:"required,gte=1"`
}

// Order represents a customer order. UserID references a User and each item
// references a Product; both are bare identifiers resolved at read time.
type Order struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Items      []OrderItem        `json:"order_items" bson:"order_items" validate:"required,min=1,dive"`
	TotalPrice float64            `json:"total_price" bson:"total_price" validate:"gte=0"`
	Status     string             `json:"status" bson:"status" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserRef is the expanded projection of an order's user reference.
type UserRef struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}

// ProductRef is the expanded projection of an item's product reference,
// carrying the product's current name and price.
type ProductRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Price float64            `json:"price"`
}

// OrderItemView is an order item with its product reference expanded.
// Product is nil when the referenced product no longer exists.
type OrderItemView struct {
	Product  *ProductRef `json:"product"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Quantity int         `json:"quantity"`
}

// OrderView is the read-side projection of an order with its user and product
// references expanded. User is nil when the referenced user no longer exists.
type OrderView struct {
	ID         primitive.ObjectID `json:"id"`
	User       *UserRef           `json:"user"`
	Items      []OrderItemView    `json:"order_items"`
	TotalPrice float64            `json:"total_price"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
