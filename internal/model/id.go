package model

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewOrderID generates a human-readable order id: "OD" followed by 8
// zero-padded digits. Uniqueness is enforced by the orders primary key, not
// here; collisions surface as insert failures.
func NewOrderID() string {
	return fmt.Sprintf("OD%08d", rand.IntN(100_000_000))
}

// NewInvoiceID generates an invoice id: "INV" followed by the last 10 digits
// of the epoch milliseconds at t.
func NewInvoiceID(t time.Time) string {
	millis := t.UnixMilli()
	return fmt.Sprintf("INV%010d", millis%10_000_000_000)
}
