// Package delivery checks pincode serviceability and quotes the shipping
// charge against the logistics provider.
package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"plant-kart/internal/config"
	"plant-kart/internal/model"

	"github.com/rs/zerolog"
)

// Verifier answers whether an address is deliverable and what delivery
// costs. Implementations must never hard-fail a checkout on provider
// outages; they degrade to the local pincode check instead.
type Verifier interface {
	// CheckServiceability reports whether the pincode is deliverable.
	CheckServiceability(ctx context.Context, pincode string) (bool, error)

	// QuoteCharge returns the shipping charge in rupees for a serviceable
	// pincode. The weight is advisory; the current rate card is flat.
	QuoteCharge(ctx context.Context, pincode string, weightGrams int) (float64, error)
}

// client implements Verifier against the Delhivery pincode API.
type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	mockMode   bool
	flatCharge float64
	logger     zerolog.Logger
}

// NewClient creates a logistics API client.
func NewClient(cfg config.DeliveryConfig, logger zerolog.Logger) Verifier {
	return &client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		mockMode:   cfg.MockMode,
		flatCharge: cfg.FlatCharge,
		logger:     logger.With().Str("component", "delivery").Logger(),
	}
}

// pincodeResponse is the slice of the provider payload we care about.
type pincodeResponse struct {
	DeliveryCodes []struct {
		PostalCode struct {
			Pin int `json:"pin"`
		} `json:"postal_code"`
	} `json:"delivery_codes"`
}

// CheckServiceability asks the provider whether the pincode is covered.
// Transport failures degrade to the local pattern check: checkout
// availability is prioritised over strict carrier validation, so an
// unreachable provider is not an error here.
func (c *client) CheckServiceability(ctx context.Context, pincode string) (bool, error) {
	if !model.ValidPincode(pincode) {
		return false, nil
	}

	if c.mockMode {
		c.logger.Debug().Str("pincode", pincode).Msg("mock mode, pincode accepted locally")
		return true, nil
	}

	serviceable, err := c.lookupPincode(ctx, pincode)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("pincode", pincode).
			Msg("logistics API unreachable, degrading to local pincode check")
		return true, nil
	}

	return serviceable, nil
}

// QuoteCharge returns the flat-rate quote for a serviceable pincode.
// Serviceability is a precondition: callers check it first, so the quote
// only re-validates the pincode shape and never calls the provider again.
func (c *client) QuoteCharge(ctx context.Context, pincode string, weightGrams int) (float64, error) {
	if !model.ValidPincode(pincode) {
		return 0, model.ErrNotServiceable
	}
	return c.flatCharge, nil
}

// lookupPincode performs the provider call. Any transport or decoding
// problem is returned so the caller can degrade.
func (c *client) lookupPincode(ctx context.Context, pincode string) (bool, error) {
	endpoint := fmt.Sprintf("%s/c/api/pin-codes/json/?%s", c.baseURL, url.Values{
		"filter_codes": {pincode},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build pincode request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("pincode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("pincode request returned status %d", resp.StatusCode)
	}

	var payload pincodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode pincode response: %w", err)
	}

	c.logger.Debug().
		Str("pincode", pincode).
		Int("matches", len(payload.DeliveryCodes)).
		Msg("pincode lookup completed")

	return len(payload.DeliveryCodes) > 0, nil
}
