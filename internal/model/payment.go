package model

import "time"

// PaymentStatus is the outcome of a single payment attempt.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Payment records one payment attempt against the gateway. Rows are
// insert-only: a retried checkout gets a fresh record, never a mutation.
type Payment struct {
	PaymentID        string        `json:"paymentId" db:"payment_id"`
	GatewayOrderID   string        `json:"transactionRef" db:"gateway_order_id"`
	GatewayPaymentID string        `json:"gatewayPaymentId,omitempty" db:"gateway_payment_id"`
	Method           string        `json:"paymentMethod" db:"method"`
	Status           PaymentStatus `json:"paymentStatus" db:"status"`
	Amount           float64       `json:"amount" db:"amount"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
}
