package services

import (
	"context"
	"log"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// EventPublisher publishes order lifecycle events to a message broker.
// Publishing is best-effort: the order write is the source of truth and a
// publish failure never fails the request.
type EventPublisher interface {
	PublishOrderEvent(event string, payload interface{}) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are emitted.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// CreateOrder persists the order exactly as supplied by the caller. Item
// snapshots and the total price are taken verbatim: no stock check and no
// server-side recomputation of the total. An empty status defaults to
// pending.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish("order.created", order)
	return order, nil
}

// GetAllOrders retrieves all orders with user and product references
// expanded.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, orders)
}

// GetOrderByID retrieves a single order by its id with references expanded.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.OrderView, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.expand(ctx, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CancelOrder sets the order status to cancelled, regardless of its current
// status. Cancelling an already cancelled order is a no-op that succeeds.
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.UpdateStatus(ctx, id, models.OrderCancelled)
	if err != nil {
		return nil, err
	}

	s.publish("order.cancelled", order)
	return order, nil
}

// expand resolves each order's user reference to {id, username} and each
// item's product reference to {id, name, price}, using the current state of
// the referenced collections. Dangling references expand to nil.
func (s *OrderService) expand(ctx context.Context, orders []models.Order) ([]models.OrderView, error) {
	userIDs := make([]string, 0, len(orders))
	var productIDs []string
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID.Hex())
		for _, item := range o.Items {
			productIDs = append(productIDs, item.ProductID.Hex())
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		view := models.OrderView{
			ID:         o.ID,
			Items:      make([]models.OrderItemView, 0, len(o.Items)),
			TotalPrice: o.TotalPrice,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
			UpdatedAt:  o.UpdatedAt,
		}
		if u, ok := users[o.UserID.Hex()]; ok {
			view.User = &models.UserRef{ID: u.ID, Username: u.Username}
		}
		for _, item := range o.Items {
			itemView := models.OrderItemView{
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			}
			if p, ok := products[item.ProductID.Hex()]; ok {
				itemView.Product = &models.ProductRef{ID: p.ID, Name: p.Name, Price: p.Price}
			}
			view.Items = append(view.Items, itemView)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *OrderService) publish(event string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"order_id":    order.ID.Hex(),
		"user_id":     order.UserID.Hex(),
		"status":      order.Status,
		"total_price": order.TotalPrice,
	}
	if err := s.publisher.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.ID.Hex(), err)
	}
}
