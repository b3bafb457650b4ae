package repositories

import (
	"context"

	"pasar/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted and only their status is ever mutated.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// UpdateStatus sets the order's status unconditionally and returns the
	// updated record.
	UpdateStatus(ctx context.Context, id string, status string) (*models.Order, error)
}
