package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered customer or administrator.
// Password holds a bcrypt hash, never plaintext. It has no json name on
// purpose so it is stripped from every serialized representation.
type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username" validate:"required,min=3,max=100"`
	Email       string             `json:"email" bson:"email" validate:"required,email"`
	Password    string             `json:"-" bson:"password" validate:"required,min=6"`
	FirstName   string             `json:"first_name" bson:"first_name" validate:"required"`
	LastName    string             `json:"last_name" bson:"last_name" validate:"required"`
	Address     string             `json:"address" bson:"address" validate:"required"`
	PhoneNumber string             `json:"phone_number" bson:"phone_number" validate:"required"`
	Role        string             `json:"role" bson:"role" validate:"omitempty,oneof=admin user"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
