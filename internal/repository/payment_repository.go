package repository

import (
	"context"
	"fmt"

	"plant-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// Create inserts a payment record.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (payment_id, gateway_order_id, gateway_payment_id, method, status, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID, payment.GatewayOrderID, payment.GatewayPaymentID,
		payment.Method, payment.Status, payment.Amount, payment.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("payment_id", payment.PaymentID).
			Str("status", string(payment.Status)).
			Msg("failed to create payment record")
		return fmt.Errorf("failed to create payment record: %w", err)
	}

	r.logger.Debug().
		Str("payment_id", payment.PaymentID).
		Str("status", string(payment.Status)).
		Msg("payment record created")

	return nil
}

// GetByID retrieves a payment record by its ID.
func (r *paymentRepository) GetByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	query := `
		SELECT payment_id, gateway_order_id, gateway_payment_id, method, status, amount, created_at
		FROM payments
		WHERE payment_id = $1
	`

	var payment model.Payment
	err := r.pool.QueryRow(ctx, query, paymentID).Scan(
		&payment.PaymentID, &payment.GatewayOrderID, &payment.GatewayPaymentID,
		&payment.Method, &payment.Status, &payment.Amount, &payment.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("payment_id", paymentID).Msg("payment record not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("payment_id", paymentID).Msg("failed to query payment record")
		return nil, fmt.Errorf("failed to query payment record: %w", err)
	}

	return &payment, nil
}
