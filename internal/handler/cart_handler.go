package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"plant-kart/internal/cart"
	"plant-kart/internal/middleware"
	"plant-kart/internal/model"
	"plant-kart/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. All routes are scoped to
// the calling user via the identity middleware.
type CartHandler struct {
	store    cart.Store
	products service.ProductService
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store cart.Store, products service.ProductService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeDomainError(w, model.ErrUnauthorised, "user id is required", h.logger)
		return
	}

	userCart, err := h.store.Get(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, "failed to load cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, userCart)
}

// addItemRequest is the body of an add-to-cart call. Display fields come
// from the catalogue, not the client.
type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeDomainError(w, model.ErrUnauthorised, "user id is required", h.logger)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, "failed to load product", h.logger)
		return
	}

	item := model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.DisplayImage(),
		Price:     product.Price,
		Quantity:  req.Quantity,
	}

	userCart, err := h.store.AddItem(r.Context(), uid, item)
	if err != nil {
		writeDomainError(w, err, "failed to add item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, userCart)
}

// setQuantityRequest is the body of a quantity update.
type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity handles PUT /api/cart/items/{productId} requests. A quantity
// of zero removes the item.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeDomainError(w, model.ErrUnauthorised, "user id is required", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	userCart, err := h.store.SetQuantity(r.Context(), uid, productID, req.Quantity)
	if err != nil {
		writeDomainError(w, err, "failed to update quantity", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, userCart)
}

// RemoveItem handles DELETE /api/cart/items/{productId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeDomainError(w, model.ErrUnauthorised, "user id is required", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	userCart, err := h.store.RemoveItems(r.Context(), uid, productID)
	if err != nil {
		writeDomainError(w, err, "failed to remove item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, userCart)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	if uid == "" {
		writeDomainError(w, model.ErrUnauthorised, "user id is required", h.logger)
		return
	}

	if err := h.store.Clear(r.Context(), uid); err != nil {
		writeDomainError(w, err, "failed to clear cart", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
