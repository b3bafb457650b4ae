package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pasar/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID.Hex()] = *product
	return nil
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}
	return list, nil
}

// GetByID returns a product by its id.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// GetByIDs returns the products matching ids, keyed by hex id.
func (r *MockProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[string]models.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			byID[id] = p
		}
	}
	return byID, nil
}

// UpdateFields merges the supplied fields into the stored product.
func (r *MockProductRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	for k, v := range fields {
		switch k {
		case "name":
			product.Name, _ = v.(string)
		case "image":
			product.Image, _ = v.(string)
		case "description":
			product.Description, _ = v.(string)
		case "price":
			product.Price, _ = v.(float64)
		case "quantity":
			product.Quantity, _ = v.(int)
		case "status":
			product.Status, _ = v.(string)
		}
	}
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

// Replace overwrites the stored product, keeping only the identifier and the
// original creation timestamp.
func (r *MockProductRepository) Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[id] = *product
	return product, nil
}

// Delete removes a product by its id.
func (r *MockProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := parseObjectID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}
