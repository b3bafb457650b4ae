package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status string) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(event string, payload interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestOrderService_CreateOrderPersistsVerbatim(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	publisher := new(MockPublisher)
	orderService := services.NewOrderService(orderRepo, userRepo, productRepo, publisher)
	ctx := context.Background()

	productID := primitive.NewObjectID()
	order := &models.Order{
		UserID: primitive.NewObjectID(),
		Items: []models.OrderItem{
			{ProductID: productID, Name: "X", Price: 10, Quantity: 2},
		},
		TotalPrice: 20,
	}

	orderRepo.On("Create", ctx, order).Return(nil).Once()
	publisher.On("PublishOrderEvent", "order.created", mock.Anything).Return(nil).Once()

	created, err := orderService.CreateOrder(ctx, order)
	assert.NoError(t, err)
	// No recomputation of the supplied snapshot or total, default status.
	assert.Equal(t, 20.0, created.TotalPrice)
	assert.Equal(t, "X", created.Items[0].Name)
	assert.Equal(t, 10.0, created.Items[0].Price)
	assert.Equal(t, models.OrderPending, created.Status)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrderWithoutPublisher(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(orderRepo, repositories.NewMockUserRepository(), repositories.NewMockProductRepository(), nil)
	ctx := context.Background()

	order := &models.Order{
		UserID:     primitive.NewObjectID(),
		Items:      []models.OrderItem{{ProductID: primitive.NewObjectID(), Name: "X", Price: 5, Quantity: 1}},
		TotalPrice: 5,
	}
	orderRepo.On("Create", ctx, order).Return(nil).Once()

	_, err := orderService.CreateOrder(ctx, order)
	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_GetAllOrdersExpandsReferences(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	orderService := services.NewOrderService(orderRepo, userRepo, productRepo, nil)
	ctx := context.Background()

	user := &models.User{Username: "budi", Email: "budi@example.com", Password: "hash",
		FirstName: "Budi", LastName: "Santoso", Address: "Jl. Melati 1", PhoneNumber: "0811", Role: models.RoleUser}
	assert.NoError(t, userRepo.Create(ctx, user))

	product := &models.Product{Name: "Laptop", Image: "https://img.example.com/laptop.png",
		Description: "High performance laptop", Price: 1500, Quantity: 3, Status: models.ProductInStock}
	assert.NoError(t, productRepo.Create(ctx, product))

	orders := []models.Order{
		{
			ID:     primitive.NewObjectID(),
			UserID: user.ID,
			Items: []models.OrderItem{
				// Snapshot price differs from the product's current price.
				{ProductID: product.ID, Name: "Laptop", Price: 1200, Quantity: 1},
			},
			TotalPrice: 1200,
			Status:     models.OrderPending,
		},
	}
	orderRepo.On("GetAll", ctx).Return(orders, nil).Once()

	views, err := orderService.GetAllOrders(ctx)
	assert.NoError(t, err)
	assert.Len(t, views, 1)

	view := views[0]
	// User reference expanded to the username.
	assert.NotNil(t, view.User)
	assert.Equal(t, "budi", view.User.Username)
	// Product reference expanded to the product's current name and price,
	// while the captured snapshot stays what the order recorded.
	assert.NotNil(t, view.Items[0].Product)
	assert.Equal(t, "Laptop", view.Items[0].Product.Name)
	assert.Equal(t, 1500.0, view.Items[0].Product.Price)
	assert.Equal(t, 1200.0, view.Items[0].Price)
	assert.Equal(t, 1200.0, view.TotalPrice)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_ExpandToleratesDanglingReferences(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(orderRepo, repositories.NewMockUserRepository(), repositories.NewMockProductRepository(), nil)
	ctx := context.Background()

	order := &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(), // no such user
		Items: []models.OrderItem{
			{ProductID: primitive.NewObjectID(), Name: "Gone", Price: 9, Quantity: 1}, // no such product
		},
		TotalPrice: 9,
		Status:     models.OrderPending,
	}
	orderRepo.On("GetByID", ctx, order.ID.Hex()).Return(order, nil).Once()

	view, err := orderService.GetOrderByID(ctx, order.ID.Hex())
	assert.NoError(t, err)
	assert.Nil(t, view.User)
	assert.Nil(t, view.Items[0].Product)
	// The captured snapshot still serves the historical record.
	assert.Equal(t, "Gone", view.Items[0].Name)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_CancelOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	publisher := new(MockPublisher)
	orderService := services.NewOrderService(orderRepo, repositories.NewMockUserRepository(), repositories.NewMockProductRepository(), publisher)
	ctx := context.Background()

	cancelled := &models.Order{ID: primitive.NewObjectID(), Status: models.OrderCancelled}
	orderRepo.On("UpdateStatus", ctx, cancelled.ID.Hex(), models.OrderCancelled).Return(cancelled, nil).Twice()
	publisher.On("PublishOrderEvent", "order.cancelled", mock.Anything).Return(nil).Twice()

	// Cancelling is unconditional and repeatable with the same outcome.
	first, err := orderService.CancelOrder(ctx, cancelled.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, first.Status)

	second, err := orderService.CancelOrder(ctx, cancelled.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, second.Status)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_CancelMissingOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderService := services.NewOrderService(orderRepo, repositories.NewMockUserRepository(), repositories.NewMockProductRepository(), nil)
	ctx := context.Background()

	id := primitive.NewObjectID().Hex()
	orderRepo.On("UpdateStatus", ctx, id, models.OrderCancelled).
		Return(nil, fmt.Errorf("order %s: %w", id, repositories.ErrNotFound)).Once()

	_, err := orderService.CancelOrder(ctx, id)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	orderRepo.AssertExpectations(t)
}
