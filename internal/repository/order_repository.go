package repository

import (
	"context"
	"fmt"
	"time"

	"plant-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderColumns is the shared select list for order scans, with the payment
// record joined in.
const orderColumns = `
	o.order_id, o.uid, o.order_status, o.invoice_id,
	o.full_name, o.phone, o.line1, o.line2, o.city, o.state, o.pincode,
	o.sub_total, o.tax, o.discount, o.coupon_code, o.shipping_charge, o.grand_total,
	o.payment_id, o.ordered_at, o.confirmed_at, o.shipped_at, o.delivered_at, o.updated_at,
	p.gateway_order_id, p.gateway_payment_id, p.method, p.status, p.amount, p.created_at
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			order_id, uid, order_status, invoice_id,
			full_name, phone, line1, line2, city, state, pincode,
			sub_total, tax, discount, coupon_code, shipping_charge, grand_total,
			payment_id, ordered_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	addr := order.DeliveryAddress
	pricing := order.Pricing
	_, err := tx.Exec(ctx, query,
		order.OrderID, order.UID, order.Status, order.InvoiceID,
		addr.FullName, addr.Phone, addr.Line1, addr.Line2, addr.City, addr.State, addr.Pincode,
		pricing.SubTotal, pricing.Tax, pricing.Discount, pricing.CouponCode, pricing.ShippingCharge, pricing.GrandTotal,
		order.PaymentID, order.Timestamps.OrderedAt, order.Timestamps.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.OrderID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.OrderID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts the order's line items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_image, price, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID, item.OrderID, item.ProductID, item.ProductName,
			item.ProductImage, item.Price, item.Quantity, item.TotalPrice)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order with its items and payment record.
func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN payments p ON p.payment_id = o.payment_id
		WHERE o.order_id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", orderID).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.loadItems(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = items[orderID]

	return order, nil
}

// List retrieves orders matching the filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN payments p ON p.payment_id = o.payment_id
		WHERE ($1 = '' OR o.uid = $1)
		  AND ($2 = '' OR o.order_status = $2)
		ORDER BY o.ordered_at DESC
		LIMIT $3 OFFSET $4
	`

	status := ""
	if filter.Status != nil {
		status = string(*filter.Status)
	}

	rows, err := r.pool.Query(ctx, query, filter.UID, status, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("uid", filter.UID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var orderIDs []string
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
		orderIDs = append(orderIDs, order.OrderID)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.loadItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].OrderID]
	}

	return orders, nil
}

// statusMilestones maps statuses to the timestamp column they stamp.
var statusMilestones = map[model.OrderStatus]string{
	model.OrderConfirmed: "confirmed_at",
	model.OrderShipped:   "shipped_at",
	model.OrderDelivered: "delivered_at",
}

// UpdateStatus writes the new status, its milestone timestamp, and updated_at.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, at time.Time) error {
	query := `UPDATE orders SET order_status = $1, updated_at = $2 WHERE order_id = $3`
	if column, ok := statusMilestones[status]; ok {
		// column comes from the fixed milestone table, never from input
		query = fmt.Sprintf(
			`UPDATE orders SET order_status = $1, updated_at = $2, %s = $2 WHERE order_id = $3`,
			column)
	}

	tag, err := r.pool.Exec(ctx, query, status, at, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID).
			Str("status", status.String()).
			Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Info().
		Str("order_id", orderID).
		Str("status", status.String()).
		Msg("order status updated")

	return nil
}

// AppendUserIndex records the order id against the user's order index.
func (r *orderRepository) AppendUserIndex(ctx context.Context, uid, orderID string) error {
	query := `
		INSERT INTO user_order_index (uid, order_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, uid, orderID, time.Now())
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("uid", uid).
			Str("order_id", orderID).
			Msg("failed to append user order index")
		return fmt.Errorf("failed to append user order index: %w", err)
	}

	return nil
}

// loadItems fetches line items for the given orders, keyed by order id.
func (r *orderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_image, price, quantity, total_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductImage, &item.Price, &item.Quantity, &item.TotalPrice)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return itemsByOrder, nil
}

// scanOrder reads one joined order row. The payment side of the join may be
// entirely NULL when the referenced record is missing.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order            model.Order
		line2            *string
		gatewayOrderID   *string
		gatewayPaymentID *string
		method           *string
		payStatus        *string
		amount           *float64
		payCreatedAt     *time.Time
	)

	err := row.Scan(
		&order.OrderID, &order.UID, &order.Status, &order.InvoiceID,
		&order.DeliveryAddress.FullName, &order.DeliveryAddress.Phone,
		&order.DeliveryAddress.Line1, &line2,
		&order.DeliveryAddress.City, &order.DeliveryAddress.State, &order.DeliveryAddress.Pincode,
		&order.Pricing.SubTotal, &order.Pricing.Tax, &order.Pricing.Discount,
		&order.Pricing.CouponCode, &order.Pricing.ShippingCharge, &order.Pricing.GrandTotal,
		&order.PaymentID,
		&order.Timestamps.OrderedAt, &order.Timestamps.ConfirmedAt,
		&order.Timestamps.ShippedAt, &order.Timestamps.DeliveredAt, &order.Timestamps.UpdatedAt,
		&gatewayOrderID, &gatewayPaymentID, &method, &payStatus, &amount, &payCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if line2 != nil {
		order.DeliveryAddress.Line2 = *line2
	}

	if gatewayOrderID != nil {
		order.Payment = &model.Payment{
			PaymentID:        order.PaymentID,
			GatewayOrderID:   *gatewayOrderID,
			GatewayPaymentID: deref(gatewayPaymentID),
			Method:           deref(method),
			Status:           model.PaymentStatus(deref(payStatus)),
			Amount:           *amount,
			CreatedAt:        *payCreatedAt,
		}
	}

	return &order, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
