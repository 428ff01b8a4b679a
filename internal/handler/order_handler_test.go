package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plant-kart/internal/middleware"
	"plant-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderService) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter model.OrderFilter, page int) ([]model.Order, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// serve runs a request through the identity middleware into the handler, the
// way the router wires it.
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	middleware.Identity(h).ServeHTTP(rr, req)
	return rr
}

func storedOrder(uid string) *model.Order {
	return &model.Order{
		OrderID:   "OD12345678",
		UID:       uid,
		Status:    model.OrderPending,
		InvoiceID: "INV1234567890",
		Items: []model.OrderItem{
			{ProductID: "P001", ProductName: "Monstera Deliciosa", ProductImage: "monstera.jpg", Price: 499, Quantity: 1, TotalPrice: 499},
		},
		Pricing: model.Pricing{SubTotal: 499, Tax: 24.95, ShippingCharge: 50, GrandTotal: 573.95},
		Timestamps: model.OrderTimestamps{
			OrderedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		uid            string
		orderID        string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			uid:            "user-1",
			orderID:        "OD12345678",
			mockReturn:     storedOrder("user-1"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Order not found",
			uid:            "user-1",
			orderID:        "OD99999999",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Another user's order reads as not found",
			uid:            "user-2",
			orderID:        "OD12345678",
			mockReturn:     storedOrder("user-1"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Missing user reads as not found",
			uid:            "",
			orderID:        "OD12345678",
			mockReturn:     storedOrder("user-1"),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			h := NewOrderHandler(mockService, logger)

			mockService.On("GetByID", mock.Anything, tt.orderID).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/orders/"+tt.orderID, nil)
			if tt.uid != "" {
				req.Header.Set("X-User-ID", tt.uid)
			}

			rr := serve(h.GetByID, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.Order
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Equal(t, tt.orderID, got.OrderID)
			}
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Lists the calling user's orders", func(t *testing.T) {
		mockService := new(MockOrderService)
		h := NewOrderHandler(mockService, logger)

		mockService.On("List", mock.Anything, model.OrderFilter{UID: "user-1"}, 1).
			Return([]model.Order{*storedOrder("user-1")}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("X-User-ID", "user-1")

		rr := serve(h.List, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []model.Order
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Len(t, got, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("Passes status filter and page", func(t *testing.T) {
		mockService := new(MockOrderService)
		h := NewOrderHandler(mockService, logger)

		shipped := model.OrderShipped
		mockService.On("List", mock.Anything, model.OrderFilter{UID: "user-1", Status: &shipped}, 3).
			Return([]model.Order{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?status=SHIPPED&page=3", nil)
		req.Header.Set("X-User-ID", "user-1")

		rr := serve(h.List, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Rejects unknown status filter", func(t *testing.T) {
		mockService := new(MockOrderService)
		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?status=TELEPORTED", nil)
		req.Header.Set("X-User-ID", "user-1")

		rr := serve(h.List, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "List")
	})

	t.Run("Requires a user", func(t *testing.T) {
		mockService := new(MockOrderService)
		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)

		rr := serve(h.List, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           interface{}
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           statusUpdateRequest{Status: "CONFIRMED"},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Unknown status",
			body:           statusUpdateRequest{Status: "TELEPORTED"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Illegal transition",
			body:           statusUpdateRequest{Status: "DELIVERED"},
			mockError:      model.ErrIllegalStatusChange,
			expectedStatus: http.StatusConflict,
			expectService:  true,
		},
		{
			name:           "Order not found",
			body:           statusUpdateRequest{Status: "CONFIRMED"},
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			h := NewOrderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("UpdateStatus", mock.Anything, "OD12345678", mock.AnythingOfType("model.OrderStatus")).
					Return(tt.mockError)
				if tt.mockError == nil {
					mockService.On("GetByID", mock.Anything, "OD12345678").Return(storedOrder("user-1"), nil)
				}
			}

			body, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPatch, "/api/orders/OD12345678/status", bytes.NewReader(body))
			req.Header.Set("X-User-ID", "user-1")

			rr := serve(h.UpdateStatus, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if !tt.expectService {
				mockService.AssertNotCalled(t, "UpdateStatus")
			}
		})
	}
}
