package repositories

import (
	"context"

	"pasar/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetByIDs returns the products matching ids, keyed by hex id. Missing
	// ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
	// UpdateFields merges only the supplied fields into the stored document
	// and returns the updated record.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error)
	// Replace overwrites every field of the stored document except the
	// identifier and creation timestamp, and returns the stored result.
	Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
