package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is the aggregate persisted at payment success. Items and the delivery
// address are embedded copies; the payment record is referenced by id and
// attached on reads.
type Order struct {
	OrderID         string          `json:"orderId" db:"order_id"`
	UID             string          `json:"uid" db:"uid"`
	Status          OrderStatus     `json:"orderStatus" db:"order_status"`
	InvoiceID       string          `json:"invoiceId" db:"invoice_id"`
	Items           []OrderItem     `json:"items"`
	DeliveryAddress Address         `json:"deliveryAddress"`
	PaymentID       string          `json:"-" db:"payment_id"`
	Payment         *Payment        `json:"payment,omitempty"`
	Pricing         Pricing         `json:"pricing"`
	Timestamps      OrderTimestamps `json:"timestamps"`
}

// OrderItem is a line item embedded in an order, with denormalized display
// fields snapshotted from the product at purchase time.
type OrderItem struct {
	ID           uuid.UUID `json:"-" db:"id"`
	OrderID      string    `json:"-" db:"order_id"`
	ProductID    string    `json:"productId" db:"product_id"`
	ProductName  string    `json:"productName" db:"product_name"`
	ProductImage string    `json:"productImage" db:"product_image"`
	Price        float64   `json:"price" db:"price"`
	Quantity     int       `json:"quantity" db:"quantity"`
	TotalPrice   float64   `json:"totalPrice" db:"total_price"`
}

// Pricing is the breakdown embedded in an order. The identity
// grandTotal = subTotal + tax + shippingCharge - discount must hold.
type Pricing struct {
	SubTotal       float64 `json:"subTotal" db:"sub_total"`
	Tax            float64 `json:"tax" db:"tax"`
	Discount       float64 `json:"discount" db:"discount"`
	CouponCode     *string `json:"couponCode,omitempty" db:"coupon_code"`
	ShippingCharge float64 `json:"shippingCharge" db:"shipping_charge"`
	GrandTotal     float64 `json:"grandTotal" db:"grand_total"`
}

// OrderTimestamps tracks the lifecycle of an order. Each milestone is nil
// until reached.
type OrderTimestamps struct {
	OrderedAt   time.Time  `json:"orderedAt" db:"ordered_at"`
	ConfirmedAt *time.Time `json:"confirmedAt" db:"confirmed_at"`
	ShippedAt   *time.Time `json:"shippedAt" db:"shipped_at"`
	DeliveredAt *time.Time `json:"deliveredAt" db:"delivered_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	UID    string
	Status *OrderStatus
}
