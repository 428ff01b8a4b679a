// Package pricing computes the checkout breakdown. All arithmetic runs on
// decimals so the paise amount handed to the payment gateway is exact.
package pricing

import (
	"plant-kart/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Subtotal sums price*quantity over the cart items, rounded to 2 decimal
// places.
func Subtotal(items []model.CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Round(2).Float64()
	return f
}

// Compute builds the full breakdown:
// grandTotal = subTotal + tax + shippingCharge - discount.
// Tax and discount are percentages of the subtotal, each rounded to 2 decimal
// places before entering the total so the identity holds on the stored values.
func Compute(subTotal, taxRatePercent, shippingCharge float64, discountPercent int, couponCode *string) model.Pricing {
	sub := decimal.NewFromFloat(subTotal)
	tax := sub.Mul(decimal.NewFromFloat(taxRatePercent)).Div(hundred).Round(2)
	discount := sub.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred).Round(2)
	shipping := decimal.NewFromFloat(shippingCharge).Round(2)

	grand := sub.Add(tax).Add(shipping).Sub(discount).Round(2)

	subF, _ := sub.Round(2).Float64()
	taxF, _ := tax.Float64()
	discountF, _ := discount.Float64()
	shippingF, _ := shipping.Float64()
	grandF, _ := grand.Float64()

	var code *string
	if couponCode != nil && *couponCode != "" {
		c := *couponCode
		code = &c
	}

	return model.Pricing{
		SubTotal:       subF,
		Tax:            taxF,
		Discount:       discountF,
		CouponCode:     code,
		ShippingCharge: shippingF,
		GrandTotal:     grandF,
	}
}

// Paise converts a rupee amount to the smallest currency unit the gateway
// expects. Conversion goes through decimal so values like 19.99 never drift.
func Paise(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// Consistent reports whether the stored breakdown still satisfies the
// grand-total identity, e.g. after a round trip through persistence.
func Consistent(p model.Pricing) bool {
	sub := decimal.NewFromFloat(p.SubTotal)
	tax := decimal.NewFromFloat(p.Tax)
	ship := decimal.NewFromFloat(p.ShippingCharge)
	discount := decimal.NewFromFloat(p.Discount)
	return sub.Add(tax).Add(ship).Sub(discount).Equal(decimal.NewFromFloat(p.GrandTotal))
}
