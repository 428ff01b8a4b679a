package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"plant-kart/internal/middleware"
	"plant-kart/internal/model"
	"plant-kart/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders requests for the calling user, with optional
// status filter and 1-based page parameter.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	uid := middleware.UID(r.Context())
	if uid == "" {
		writeDomainError(w, model.ErrUnauthorised, "user id is required", h.logger)
		return
	}

	filter := model.OrderFilter{UID: uid}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := model.ParseOrderStatus(raw)
		if err != nil {
			writeDomainError(w, err, "invalid status filter", h.logger)
			return
		}
		filter.Status = &status
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		var err error
		page, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid page parameter", h.logger)
			return
		}
	}

	orders, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		writeDomainError(w, err, "failed to list orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve order", h.logger)
		return
	}

	if order == nil {
		writeDomainError(w, model.ErrOrderNotFound, "order not found", h.logger)
		return
	}

	// Orders are user-scoped; the caller may only read their own.
	if uid := middleware.UID(r.Context()); uid == "" || uid != order.UID {
		writeDomainError(w, model.ErrOrderNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// statusUpdateRequest is the body of a status update.
type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/orders/"), "/status")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		writeDomainError(w, err, "invalid status", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, status); err != nil {
		writeDomainError(w, err, "failed to update order status", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil || order == nil {
		// Update succeeded; return a minimal acknowledgement.
		writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID, "orderStatus": string(status)})
		return
	}

	writeJSON(w, http.StatusOK, order)
}
