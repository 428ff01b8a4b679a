package checkout

import (
	"context"
	"time"

	"plant-kart/internal/model"
)

// Service is the checkout pipeline as seen by transport code.
type Service interface {
	// Submit starts a checkout attempt for the user's current cart.
	Submit(ctx context.Context, req SubmitRequest) (*Attempt, error)

	// Complete resolves a pending attempt after gateway success.
	Complete(ctx context.Context, attemptID string, req CompleteRequest) (*Attempt, error)

	// Fail resolves a pending attempt after gateway failure or abandonment.
	Fail(ctx context.Context, attemptID, reason string) (*Attempt, error)

	// Get retrieves an attempt by id.
	Get(attemptID string) (*Attempt, error)
}

// AttemptState is the lifecycle state of a checkout attempt.
type AttemptState string

const (
	AttemptPending AttemptState = "PENDING"
	AttemptSuccess AttemptState = "SUCCESS"
	AttemptFailed  AttemptState = "FAILED"
)

// Attempt is a single pass through the checkout pipeline: one priced cart
// snapshot, one gateway order, one terminal resolution. The snapshot is
// frozen at submission; later cart edits do not leak into the attempt.
type Attempt struct {
	ID             string            `json:"attemptId"`
	UID            string            `json:"uid"`
	OrderID        string            `json:"orderId"`
	InvoiceID      string            `json:"invoiceId"`
	GatewayOrderID string            `json:"gatewayOrderId"`
	GatewayKeyID   string            `json:"gatewayKeyId"`
	AmountPaise    int64             `json:"amountPaise"`
	State          AttemptState      `json:"state"`
	FailureReason  string            `json:"failureReason,omitempty"`
	Items          []model.OrderItem `json:"items"`
	Address        model.Address     `json:"deliveryAddress"`
	Pricing        model.Pricing     `json:"pricing"`
	CreatedAt      time.Time         `json:"createdAt"`
	ResolvedAt     *time.Time        `json:"resolvedAt,omitempty"`

	// claimed marks the attempt as taken by a Complete or Fail call so
	// resolution happens exactly once.
	claimed bool
}

// snapshot returns a copy safe to hand outside the orchestrator's lock.
func (a *Attempt) snapshot() *Attempt {
	copied := *a
	copied.Items = make([]model.OrderItem, len(a.Items))
	copy(copied.Items, a.Items)
	if a.ResolvedAt != nil {
		at := *a.ResolvedAt
		copied.ResolvedAt = &at
	}
	return &copied
}
