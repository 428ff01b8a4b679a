// Package gateway bridges checkout to the Razorpay payment gateway. The key
// secret stays server-side; browsers only ever receive the key id and the
// gateway order id.
package gateway

import (
	"context"
	"fmt"

	"plant-kart/internal/model"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
)

// GatewayOrder is the remote payment-order record authorising a checkout
// amount.
type GatewayOrder struct {
	ID       string `json:"orderId"`
	Amount   int64  `json:"amount"` // minor units (paise)
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// Gateway creates remote payment orders and verifies completion signatures.
type Gateway interface {
	// CreateOrder registers an order with the gateway. The amount must
	// already be in minor units; this layer performs no conversion.
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*GatewayOrder, error)

	// VerifySignature checks the HMAC the gateway attaches to a completed
	// payment. A mismatch means the callback cannot be trusted.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error

	// KeyID returns the public key id for widget initialisation.
	KeyID() string
}

// razorpayGateway implements Gateway using the official SDK.
type razorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	logger    zerolog.Logger
}

// New creates a Razorpay-backed gateway.
func New(keyID, keySecret string, logger zerolog.Logger) Gateway {
	return &razorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger.With().Str("component", "razorpay-gateway").Logger(),
	}
}

// CreateOrder registers a payment order with Razorpay.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*GatewayOrder, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("gateway order amount must be positive, got %d", amountPaise)
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Error().
			Err(err).
			Int64("amount_paise", amountPaise).
			Str("receipt", receipt).
			Msg("failed to create gateway order")
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("gateway order response missing id")
	}

	g.logger.Info().
		Str("gateway_order_id", orderID).
		Int64("amount_paise", amountPaise).
		Msg("gateway order created")

	return &GatewayOrder{
		ID:       orderID,
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    g.keyID,
	}, nil
}

// VerifySignature validates the HMAC-SHA256 of "orderID|paymentID" issued by
// the gateway on payment completion.
func (g *razorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	if !ValidSignature(gatewayOrderID, gatewayPaymentID, signature, g.keySecret) {
		g.logger.Warn().
			Str("gateway_order_id", gatewayOrderID).
			Str("gateway_payment_id", gatewayPaymentID).
			Msg("payment signature mismatch")
		return model.ErrInvalidSignature
	}
	return nil
}

// KeyID returns the public gateway key id.
func (g *razorpayGateway) KeyID() string {
	return g.keyID
}
