package service

import (
	"context"

	"plant-kart/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// Create persists a new order with its items in a single transaction.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its ID with hydrated item images.
	// Returns nil when no order exists.
	GetByID(ctx context.Context, orderID string) (*model.Order, error)

	// List retrieves orders matching the filter, newest first.
	// Pages are 1-based.
	List(ctx context.Context, filter model.OrderFilter, page int) ([]model.Order, error)

	// UpdateStatus moves an order to the given status if the transition
	// is allowed from its current status.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
