package coupon

import (
	"context"
	"fmt"
	"sync"

	"plant-kart/internal/model"

	"github.com/rs/zerolog"
)

// validator implements Validator over the loaded coupon sets. Sets are
// read-only after initialisation, so lookups need no locking.
type validator struct {
	couponSets []CouponSet
	logger     zerolog.Logger
}

// ValidatorConfig holds configuration for the coupon validator.
type ValidatorConfig struct {
	// FilePaths is the list of coupon file paths to load.
	FilePaths []string
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		FilePaths: []string{
			"data/coupons/store.gz",
			"data/coupons/seasonal.gz",
		},
	}
}

// NewValidator creates a new coupon validator. All coupon files are loaded
// concurrently at initialisation time.
func NewValidator(ctx context.Context, config *ValidatorConfig, loader Loader, logger zerolog.Logger) (Validator, error) {
	if config == nil {
		config = DefaultValidatorConfig()
	}

	logger = logger.With().Str("component", "coupon-validator").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Msg("initialising coupon validator")

	v := &validator{
		couponSets: make([]CouponSet, 0, len(config.FilePaths)),
		logger:     logger,
	}

	type loadResult struct {
		index int
		set   CouponSet
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load coupon file")
			return nil, fmt.Errorf("failed to load coupon file %s: %w", config.FilePaths[i], result.err)
		}
		v.couponSets = append(v.couponSets, result.set)
		logger.Info().
			Str("file", config.FilePaths[i]).
			Int("size", result.set.Size()).
			Msg("coupon file loaded")
	}

	totalCoupons := 0
	for _, set := range v.couponSets {
		totalCoupons += set.Size()
	}

	logger.Info().
		Int("total_coupons", totalCoupons).
		Msg("coupon validator initialised successfully")

	return v, nil
}

// Validate checks a coupon code and returns its discount percent. The first
// set containing the code wins.
func (v *validator) Validate(ctx context.Context, code string) (int, error) {
	// Validate length first (cheap check)
	if len(code) < 4 || len(code) > 12 {
		v.logger.Debug().
			Str("coupon_code", code).
			Int("length", len(code)).
			Msg("coupon code length invalid")
		return 0, model.ErrInvalidCoupon
	}

	for _, set := range v.couponSets {
		if percent, ok := set.Lookup(code); ok {
			v.logger.Debug().
				Str("coupon_code", code).
				Int("discount_percent", percent).
				Msg("coupon code validated")
			return percent, nil
		}
	}

	v.logger.Debug().
		Str("coupon_code", code).
		Msg("coupon code not found")

	return 0, model.ErrInvalidCoupon
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	v.couponSets = nil
	return nil
}
