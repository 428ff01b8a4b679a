package repository

import (
	"context"
	"time"

	"plant-kart/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist in the database.
	// Returns error if any product ID does not exist.
	ValidateProductsExist(ctx context.Context, ids []string) error
}

// OrderRepository defines the interface for order data access operations.
// Orders are written once at payment success; later writes touch only the
// status envelope.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items and payment record, or nil
	// when no such order exists.
	GetByID(ctx context.Context, orderID string) (*model.Order, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter, limit, offset int) ([]model.Order, error)

	// UpdateStatus writes the new status, its milestone timestamp, and
	// updated_at. It does not validate transition legality; that is the
	// service layer's job.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, at time.Time) error

	// AppendUserIndex records the order id against the user's order index.
	// The index is an eventually-consistent denormalization; callers treat
	// failures as non-fatal.
	AppendUserIndex(ctx context.Context, uid, orderID string) error
}

// PaymentRepository defines the interface for payment attempt records.
// Records are insert-only: a new attempt gets a new row, never an update.
type PaymentRepository interface {
	// Create inserts a payment record.
	Create(ctx context.Context, payment *model.Payment) error

	// GetByID retrieves a payment record, or nil when no such record exists.
	GetByID(ctx context.Context, paymentID string) (*model.Payment, error)
}
