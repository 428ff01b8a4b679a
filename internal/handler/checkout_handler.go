package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"plant-kart/internal/checkout"
	"plant-kart/internal/middleware"
	"plant-kart/internal/model"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout attempt HTTP requests.
type CheckoutHandler struct {
	orchestrator checkout.Service
	logger       zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(orchestrator checkout.Service, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		logger:       logger.With().Str("handler", "checkout").Logger(),
	}
}

// Submit handles POST /api/checkout requests. Success returns a pending
// attempt carrying the gateway order id and amount for the payment widget.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req checkout.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	req.UID = middleware.UID(r.Context())

	attempt, err := h.orchestrator.Submit(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "failed to submit checkout", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, attempt)
}

// Get handles GET /api/checkout/{id} requests.
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	attemptID := strings.TrimPrefix(r.URL.Path, "/api/checkout/")
	if attemptID == "" {
		writeError(w, http.StatusBadRequest, "attempt ID is required", h.logger)
		return
	}

	attempt, err := h.orchestrator.Get(attemptID)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve attempt", h.logger)
		return
	}

	if uid := middleware.UID(r.Context()); uid == "" || uid != attempt.UID {
		writeDomainError(w, model.ErrAttemptNotFound, "attempt not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

// ownsAttempt reports whether the request's identity owns the attempt.
// Attempts belonging to other users read as not found, same as Get.
func (h *CheckoutHandler) ownsAttempt(r *http.Request, attemptID string) bool {
	attempt, err := h.orchestrator.Get(attemptID)
	if err != nil {
		return false
	}
	uid := middleware.UID(r.Context())
	return uid != "" && uid == attempt.UID
}

// Complete handles POST /api/checkout/{id}/complete requests, delivered
// after the payment widget reports success.
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	attemptID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/checkout/"), "/complete")
	if attemptID == "" {
		writeError(w, http.StatusBadRequest, "attempt ID is required", h.logger)
		return
	}

	if !h.ownsAttempt(r, attemptID) {
		writeDomainError(w, model.ErrAttemptNotFound, "attempt not found", h.logger)
		return
	}

	var req checkout.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	attempt, err := h.orchestrator.Complete(r.Context(), attemptID, req)
	if err != nil {
		writeDomainError(w, err, "failed to complete checkout", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

// failRequest is the body of a checkout failure callback.
type failRequest struct {
	Reason string `json:"reason"`
}

// Fail handles POST /api/checkout/{id}/fail requests, delivered when the
// payment widget reports failure or is dismissed.
func (h *CheckoutHandler) Fail(w http.ResponseWriter, r *http.Request) {
	attemptID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/checkout/"), "/fail")
	if attemptID == "" {
		writeError(w, http.StatusBadRequest, "attempt ID is required", h.logger)
		return
	}

	if !h.ownsAttempt(r, attemptID) {
		writeDomainError(w, model.ErrAttemptNotFound, "attempt not found", h.logger)
		return
	}

	var req failRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	attempt, err := h.orchestrator.Fail(r.Context(), attemptID, req.Reason)
	if err != nil {
		writeDomainError(w, err, "failed to record checkout failure", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}
