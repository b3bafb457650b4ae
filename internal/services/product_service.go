package services

import (
	"context"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its id.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product. An empty status defaults to in stock.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Status == "" {
		product.Status = models.ProductInStock
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct merges only the supplied fields into the stored product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	return s.repo.UpdateFields(ctx, id, fields)
}

// ReplaceProduct overwrites every field of the stored product except the
// identifier and creation timestamp.
func (s *ProductService) ReplaceProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if product.Status == "" {
		product.Status = models.ProductInStock
	}
	return s.repo.Replace(ctx, id, product)
}

// DeleteProduct deletes a product by its id.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
