package handler

import (
	"encoding/json"
	"net/http"

	"plant-kart/internal/gateway"

	"github.com/rs/zerolog"
)

// GatewayHandler proxies raw payment-order creation for clients that drive
// the payment widget outside the checkout pipeline.
type GatewayHandler struct {
	gateway gateway.Gateway
	logger  zerolog.Logger
}

// NewGatewayHandler creates a new gateway handler.
func NewGatewayHandler(gw gateway.Gateway, logger zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway: gw,
		logger:  logger.With().Str("handler", "gateway").Logger(),
	}
}

// createOrderRequest carries the amount in minor units (paise).
type createOrderRequest struct {
	Amount  int64  `json:"amount"`
	Receipt string `json:"receipt,omitempty"`
}

// CreateOrder handles POST /api/razorpay/create-order requests.
func (h *GatewayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be a positive number of paise", h.logger)
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), req.Amount, req.Receipt)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to create payment order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
