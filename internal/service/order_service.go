package service

import (
	"context"
	"fmt"
	"time"

	"plant-kart/internal/model"
	"plant-kart/internal/repository"

	"github.com/rs/zerolog"
)

// listPageSize is the number of orders returned per page.
const listPageSize = 20

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Create persists a new order with its items in a single transaction. The
// per-user order index is appended outside the transaction on a best-effort
// basis; a missing index entry never fails the order.
func (s *orderService) Create(ctx context.Context, order *model.Order) error {
	if order == nil || order.OrderID == "" {
		return fmt.Errorf("order is missing an id")
	}
	if len(order.Items) == 0 {
		return model.ErrEmptyCart
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.OrderID).
			Int("item_count", len(order.Items)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if idxErr := s.orderRepo.AppendUserIndex(ctx, order.UID, order.OrderID); idxErr != nil {
		s.logger.Warn().
			Err(idxErr).
			Str("uid", order.UID).
			Str("order_id", order.OrderID).
			Msg("failed to append user order index")
	}

	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("uid", order.UID).
		Int("item_count", len(order.Items)).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID with hydrated item images.
func (s *orderService) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if orderID == "" {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", orderID).Msg("order not found")
		return nil, nil
	}

	s.hydrateItemImages(ctx, order.Items)

	return order, nil
}

// List retrieves orders matching the filter, newest first.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter, page int) ([]model.Order, error) {
	if page < 1 {
		page = 1
	}

	orders, err := s.orderRepo.List(ctx, filter, listPageSize, (page-1)*listPageSize)
	if err != nil {
		s.logger.Error().Err(err).Str("uid", filter.UID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		s.hydrateItemImages(ctx, orders[i].Items)
	}

	s.logger.Debug().
		Str("uid", filter.UID).
		Int("page", page).
		Int("count", len(orders)).
		Msg("listed orders")

	return orders, nil
}

// UpdateStatus moves an order to the given status, enforcing the order
// lifecycle. Illegal jumps such as PENDING to DELIVERED are rejected.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return model.ErrUnknownStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to get order for status update")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(status) {
		s.logger.Warn().
			Str("order_id", orderID).
			Str("from", string(order.Status)).
			Str("to", string(status)).
			Msg("illegal status transition rejected")
		return model.ErrIllegalStatusChange
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, time.Now()); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", orderID).
			Str("status", string(status)).
			Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Msg("order status updated")

	return nil
}

// hydrateItemImages fills empty item image fields from the live product
// catalog. Items keep their stored snapshot when present; items whose
// product has since been deleted keep an empty image. Catalog errors are
// logged and swallowed so a flaky products table never breaks order display.
func (s *orderService) hydrateItemImages(ctx context.Context, items []model.OrderItem) {
	var missing []string
	for i := range items {
		if items[i].ProductImage == "" {
			missing = append(missing, items[i].ProductID)
		}
	}
	if len(missing) == 0 {
		return
	}

	products, err := s.productRepo.GetByIDs(ctx, missing)
	if err != nil {
		s.logger.Warn().Err(err).Int("count", len(missing)).Msg("failed to hydrate item images")
		return
	}

	images := make(map[string]string, len(products))
	for i := range products {
		images[products[i].ID] = products[i].DisplayImage()
	}

	for i := range items {
		if items[i].ProductImage == "" {
			items[i].ProductImage = images[items[i].ProductID]
		}
	}
}
