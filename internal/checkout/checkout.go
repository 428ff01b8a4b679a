package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"plant-kart/internal/cart"
	"plant-kart/internal/coupon"
	"plant-kart/internal/delivery"
	"plant-kart/internal/gateway"
	"plant-kart/internal/model"
	"plant-kart/internal/pricing"
	"plant-kart/internal/repository"
	"plant-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// itemWeightGrams is the flat per-unit shipping weight used for delivery
// quotes until the catalogue carries real weights.
const itemWeightGrams = 500

// SubmitRequest starts a checkout attempt for a user's current cart.
type SubmitRequest struct {
	UID        string        `json:"-"`
	Address    model.Address `json:"deliveryAddress"`
	CouponCode *string       `json:"couponCode,omitempty"`
}

// CompleteRequest carries the gateway's payment confirmation.
type CompleteRequest struct {
	GatewayPaymentID string `json:"razorpayPaymentId"`
	Signature        string `json:"razorpaySignature"`
	Method           string `json:"paymentMethod"`
}

// Orchestrator drives checkout attempts from submission through payment
// resolution. Pending attempts live in memory; an attempt becomes durable
// only when its payment resolves.
type Orchestrator struct {
	carts      cart.Store
	verifier   delivery.Verifier
	gateway    gateway.Gateway
	coupons    coupon.Validator
	orders     service.OrderService
	payments   repository.PaymentRepository
	taxPercent float64
	logger     zerolog.Logger

	mu       sync.Mutex
	attempts map[string]*Attempt
}

// NewOrchestrator creates a checkout orchestrator.
func NewOrchestrator(
	carts cart.Store,
	verifier delivery.Verifier,
	gw gateway.Gateway,
	coupons coupon.Validator,
	orders service.OrderService,
	payments repository.PaymentRepository,
	taxPercent float64,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		carts:      carts,
		verifier:   verifier,
		gateway:    gw,
		coupons:    coupons,
		orders:     orders,
		payments:   payments,
		taxPercent: taxPercent,
		logger:     logger.With().Str("component", "checkout").Logger(),
		attempts:   make(map[string]*Attempt),
	}
}

// Submit validates the user's cart and address, prices the order, registers
// it with the payment gateway, and records a pending attempt. Each call
// produces a fresh attempt and a fresh gateway order; submissions are not
// deduplicated.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (*Attempt, error) {
	if req.UID == "" {
		return nil, model.ErrUnauthorised
	}
	if err := req.Address.Validate(); err != nil {
		return nil, err
	}

	userCart, err := o.carts.Get(ctx, req.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if userCart.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	// Serviceability was checked when the address was captured, but carts
	// linger; re-verify before taking money.
	serviceable, err := o.verifier.CheckServiceability(ctx, req.Address.Pincode)
	if err != nil {
		return nil, err
	}
	if !serviceable {
		return nil, model.ErrNotServiceable
	}

	weight := 0
	for _, item := range userCart.Items {
		weight += item.Quantity * itemWeightGrams
	}
	shipping, err := o.verifier.QuoteCharge(ctx, req.Address.Pincode, weight)
	if err != nil {
		return nil, err
	}

	discountPercent := 0
	if req.CouponCode != nil && *req.CouponCode != "" {
		discountPercent, err = o.coupons.Validate(ctx, *req.CouponCode)
		if err != nil {
			o.logger.Warn().Str("coupon_code", *req.CouponCode).Err(err).Msg("coupon rejected")
			return nil, err
		}
	}

	subTotal := pricing.Subtotal(userCart.Items)
	priced := pricing.Compute(subTotal, o.taxPercent, shipping, discountPercent, req.CouponCode)
	amountPaise := pricing.Paise(priced.GrandTotal)

	orderID := model.NewOrderID()
	gwOrder, err := o.gateway.CreateOrder(ctx, amountPaise, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	attempt := &Attempt{
		ID:             uuid.NewString(),
		UID:            req.UID,
		OrderID:        orderID,
		InvoiceID:      model.NewInvoiceID(time.Now()),
		GatewayOrderID: gwOrder.ID,
		GatewayKeyID:   gwOrder.KeyID,
		AmountPaise:    amountPaise,
		State:          AttemptPending,
		Items:          orderItemsFromCart(orderID, userCart.Items),
		Address:        req.Address,
		Pricing:        priced,
		CreatedAt:      time.Now(),
	}

	o.mu.Lock()
	o.attempts[attempt.ID] = attempt
	o.mu.Unlock()

	o.logger.Info().
		Str("attempt_id", attempt.ID).
		Str("order_id", orderID).
		Str("gateway_order_id", gwOrder.ID).
		Int64("amount_paise", amountPaise).
		Msg("checkout attempt submitted")

	return attempt.snapshot(), nil
}

// Complete resolves a pending attempt after the gateway reports payment
// success. The attempt is claimed exactly once: concurrent or repeated
// completions return ErrAttemptFinished. A bad signature fails the attempt.
// A verified payment must land as a SUCCESS payment row before anything
// references it: if that write fails the attempt fails with
// ErrPaymentNotRecorded and no order is created. If the order cannot be
// persisted after the payment row landed, the SUCCESS record is kept as the
// reconciliation anchor and ErrOrderNotRecorded is returned.
func (o *Orchestrator) Complete(ctx context.Context, attemptID string, req CompleteRequest) (*Attempt, error) {
	attempt, err := o.claim(attemptID)
	if err != nil {
		return nil, err
	}

	if err := o.gateway.VerifySignature(attempt.GatewayOrderID, req.GatewayPaymentID, req.Signature); err != nil {
		o.logger.Warn().
			Str("attempt_id", attemptID).
			Str("gateway_order_id", attempt.GatewayOrderID).
			Msg("payment signature mismatch")
		o.recordPayment(ctx, attempt, req, model.PaymentFailed)
		o.resolve(attempt, AttemptFailed, "signature verification failed")
		return attempt.snapshot(), model.ErrInvalidSignature
	}

	paymentID, err := o.recordPayment(ctx, attempt, req, model.PaymentSuccess)
	if err != nil {
		o.resolve(attempt, AttemptFailed, "payment could not be recorded")
		return attempt.snapshot(), fmt.Errorf("%w: gateway payment %s", model.ErrPaymentNotRecorded, req.GatewayPaymentID)
	}

	order := o.buildOrder(attempt, paymentID)
	if err := o.orders.Create(ctx, order); err != nil {
		o.logger.Error().
			Err(err).
			Str("attempt_id", attemptID).
			Str("order_id", attempt.OrderID).
			Str("payment_id", paymentID).
			Msg("payment captured but order not recorded")
		o.resolve(attempt, AttemptFailed, "order could not be recorded")
		return attempt.snapshot(), fmt.Errorf("%w: payment %s", model.ErrOrderNotRecorded, paymentID)
	}

	purchased := model.ProductIDs(attempt.Items)
	if _, err := o.carts.RemoveItems(ctx, attempt.UID, purchased...); err != nil {
		o.logger.Warn().
			Err(err).
			Str("uid", attempt.UID).
			Str("order_id", attempt.OrderID).
			Msg("failed to clear purchased items from cart")
	}

	o.resolve(attempt, AttemptSuccess, "")

	o.logger.Info().
		Str("attempt_id", attemptID).
		Str("order_id", attempt.OrderID).
		Str("payment_id", paymentID).
		Msg("checkout completed")

	return attempt.snapshot(), nil
}

// Fail resolves a pending attempt after the gateway reports payment failure
// or the user abandons the widget. The cart is left untouched so the user
// can retry. Like Complete, the attempt is claimed exactly once.
func (o *Orchestrator) Fail(ctx context.Context, attemptID, reason string) (*Attempt, error) {
	attempt, err := o.claim(attemptID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "payment failed"
	}

	o.recordPayment(ctx, attempt, CompleteRequest{}, model.PaymentFailed)
	o.resolve(attempt, AttemptFailed, reason)

	o.logger.Info().
		Str("attempt_id", attemptID).
		Str("order_id", attempt.OrderID).
		Str("reason", reason).
		Msg("checkout failed")

	return attempt.snapshot(), nil
}

// Get retrieves an attempt by id.
func (o *Orchestrator) Get(attemptID string) (*Attempt, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	attempt, ok := o.attempts[attemptID]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}
	return attempt.snapshot(), nil
}

// claim takes exclusive ownership of a pending attempt. Exactly one caller
// wins; the rest see ErrAttemptFinished.
func (o *Orchestrator) claim(attemptID string) (*Attempt, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	attempt, ok := o.attempts[attemptID]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}
	if attempt.State != AttemptPending || attempt.claimed {
		return nil, model.ErrAttemptFinished
	}
	attempt.claimed = true
	return attempt, nil
}

// resolve marks a claimed attempt terminal.
func (o *Orchestrator) resolve(attempt *Attempt, state AttemptState, reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := time.Now()
	attempt.State = state
	attempt.FailureReason = reason
	attempt.ResolvedAt = &now
}

// recordPayment inserts a payment row for the attempt and returns its id.
// Insertion failures are logged and returned; callers on the failed-payment
// path ignore them so an audit record never blocks resolving the attempt,
// but a SUCCESS row must land durably before any order references it.
func (o *Orchestrator) recordPayment(ctx context.Context, attempt *Attempt, req CompleteRequest, status model.PaymentStatus) (string, error) {
	method := req.Method
	if method == "" {
		method = "razorpay"
	}

	payment := &model.Payment{
		PaymentID:        uuid.NewString(),
		GatewayOrderID:   attempt.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Method:           method,
		Status:           status,
		Amount:           attempt.Pricing.GrandTotal,
		CreatedAt:        time.Now(),
	}

	if err := o.payments.Create(ctx, payment); err != nil {
		o.logger.Error().
			Err(err).
			Str("attempt_id", attempt.ID).
			Str("payment_id", payment.PaymentID).
			Str("status", string(status)).
			Msg("failed to record payment")
		return payment.PaymentID, fmt.Errorf("failed to record payment: %w", err)
	}

	return payment.PaymentID, nil
}

// buildOrder assembles the durable order from the attempt's snapshot.
func (o *Orchestrator) buildOrder(attempt *Attempt, paymentID string) *model.Order {
	now := time.Now()
	return &model.Order{
		OrderID:         attempt.OrderID,
		UID:             attempt.UID,
		Status:          model.OrderPending,
		InvoiceID:       attempt.InvoiceID,
		Items:           attempt.Items,
		DeliveryAddress: attempt.Address,
		PaymentID:       paymentID,
		Pricing:         attempt.Pricing,
		Timestamps: model.OrderTimestamps{
			OrderedAt: now,
			UpdatedAt: now,
		},
	}
}

// orderItemsFromCart snapshots cart lines into order items.
func orderItemsFromCart(orderID string, items []model.CartItem) []model.OrderItem {
	out := make([]model.OrderItem, len(items))
	for i, item := range items {
		out[i] = model.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    item.ProductID,
			ProductName:  item.Name,
			ProductImage: item.Image,
			Price:        item.Price,
			Quantity:     item.Quantity,
			TotalPrice:   item.Price * float64(item.Quantity),
		}
	}
	return out
}
