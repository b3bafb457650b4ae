package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

func TestProductService_CreateDefaultsStatus(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	productService := services.NewProductService(repo)
	ctx := context.Background()

	product := &models.Product{
		Name:        "Keyboard",
		Image:       "https://img.example.com/keyboard.png",
		Description: "Mechanical keyboard",
		Price:       75,
		Quantity:    25,
	}
	err := productService.CreateProduct(ctx, product)
	assert.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	assert.Equal(t, models.ProductInStock, product.Status)
}

func TestProductService_UpdateMergesOnlySuppliedFields(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	productService := services.NewProductService(repo)
	ctx := context.Background()

	product := &models.Product{
		Name:        "Monitor",
		Image:       "https://img.example.com/monitor.png",
		Description: "27 inch monitor",
		Price:       200,
		Quantity:    10,
		Status:      models.ProductInStock,
	}
	assert.NoError(t, productService.CreateProduct(ctx, product))

	updated, err := productService.UpdateProduct(ctx, product.ID.Hex(), map[string]interface{}{
		"price": 300000.0,
	})
	assert.NoError(t, err)
	assert.Equal(t, 300000.0, updated.Price)
	// Every untouched field survives the merge.
	assert.Equal(t, "Monitor", updated.Name)
	assert.Equal(t, "https://img.example.com/monitor.png", updated.Image)
	assert.Equal(t, "27 inch monitor", updated.Description)
	assert.Equal(t, 10, updated.Quantity)
	assert.Equal(t, models.ProductInStock, updated.Status)

	// The merge is visible on immediate re-read.
	reread, err := productService.GetProductByID(ctx, product.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, 300000.0, reread.Price)
}

func TestProductService_ReplaceKeepsIdentityAndCreationTime(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	productService := services.NewProductService(repo)
	ctx := context.Background()

	original := &models.Product{
		Name:        "Mouse",
		Image:       "https://img.example.com/mouse.png",
		Description: "Wireless mouse",
		Price:       25,
		Quantity:    50,
		Status:      models.ProductInStock,
	}
	assert.NoError(t, productService.CreateProduct(ctx, original))

	replacement := &models.Product{
		Name:        "Trackball",
		Image:       "https://img.example.com/trackball.png",
		Description: "Ergonomic trackball",
		Price:       40,
		Quantity:    0,
		Status:      models.ProductOutOfStock,
	}
	replaced, err := productService.ReplaceProduct(ctx, original.ID.Hex(), replacement)
	assert.NoError(t, err)
	assert.Equal(t, original.ID, replaced.ID)
	assert.Equal(t, original.CreatedAt, replaced.CreatedAt)
	assert.Equal(t, "Trackball", replaced.Name)
	assert.Equal(t, models.ProductOutOfStock, replaced.Status)
}

func TestProductService_NotFoundAndMalformedIDs(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	productService := services.NewProductService(repo)
	ctx := context.Background()

	_, err := productService.GetProductByID(ctx, "652f8aab9d2e4c0c5c000000")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = productService.GetProductByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, repositories.ErrInvalidID)

	err = productService.DeleteProduct(ctx, "652f8aab9d2e4c0c5c000000")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
