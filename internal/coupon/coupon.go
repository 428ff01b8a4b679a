package coupon

import (
	"context"
)

// Validator resolves coupon codes to discount percentages.
type Validator interface {
	// Validate checks a coupon code and returns its discount percent.
	// A valid code must be between 4 and 12 characters and appear in one of
	// the loaded coupon files.
	Validate(ctx context.Context, code string) (int, error)

	// Close releases resources held by the validator.
	Close() error
}

// CouponSet maps coupon codes to discount percentages.
type CouponSet interface {
	// Lookup returns the discount percent for a code, if present.
	Lookup(code string) (int, bool)

	// Size returns the number of coupons in the set.
	Size() int
}

// Loader defines the interface for loading coupon files.
type Loader interface {
	// Load reads a gzipped coupon file and returns a CouponSet. Each line is
	// "CODE,percent"; the percent may be omitted for the default discount.
	Load(ctx context.Context, filePath string) (CouponSet, error)
}
