package service

import (
	"context"
	"errors"
	"testing"

	"plant-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrder(orderID string) *model.Order {
	return &model.Order{
		OrderID: orderID,
		UID:     "user-1",
		Status:  model.OrderPending,
		Items: []model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: "P001", ProductName: "Monstera", ProductImage: "monstera.jpg", Price: 499, Quantity: 2, TotalPrice: 998},
		},
	}
}

func TestOrderService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	order := testOrder("OD12345678")

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, order).Return(nil)
	mockOrderRepo.On("CreateOrderItems", ctx, mockTx, order.Items).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockOrderRepo.On("AppendUserIndex", ctx, "user-1", "OD12345678").Return(nil)

	err := svc.Create(ctx, order)

	require.NoError(t, err)
	assert.True(t, mockTx.committed)
	mockOrderRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_Create_IndexAppendFailureIsNonFatal(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	order := testOrder("OD12345678")

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, order).Return(nil)
	mockOrderRepo.On("CreateOrderItems", ctx, mockTx, order.Items).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockOrderRepo.On("AppendUserIndex", ctx, "user-1", "OD12345678").Return(errors.New("index unavailable"))

	err := svc.Create(ctx, order)

	require.NoError(t, err)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_Create_EmptyItems(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	order := testOrder("OD12345678")
	order.Items = nil

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	err := svc.Create(ctx, order)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	mockOrderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_Create_InsertFailureRollsBack(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	order := testOrder("OD12345678")

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, order).Return(errors.New("insert failed"))
	mockTx.On("Rollback", ctx).Return(nil)

	err := svc.Create(ctx, order)

	require.Error(t, err)
	assert.True(t, mockTx.rolledBack)
	mockOrderRepo.AssertNotCalled(t, "CreateOrderItems")
	mockOrderRepo.AssertNotCalled(t, "AppendUserIndex")
	mockTx.AssertExpectations(t)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("GetByID", ctx, "OD00000000").Return(nil, nil)

	order, err := svc.GetByID(ctx, "OD00000000")

	require.NoError(t, err)
	assert.Nil(t, order)
	mockProductRepo.AssertNotCalled(t, "GetByIDs")
}

func TestOrderService_GetByID_HydratesMissingImages(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	stored := testOrder("OD12345678")
	stored.Items = []model.OrderItem{
		{ProductID: "P001", ProductName: "Monstera", ProductImage: "snapshot.jpg", Price: 499, Quantity: 1, TotalPrice: 499},
		{ProductID: "P002", ProductName: "Snake Plant", ProductImage: "", Price: 299, Quantity: 1, TotalPrice: 299},
		{ProductID: "P003", ProductName: "Fern", ProductImage: "", Price: 199, Quantity: 1, TotalPrice: 199},
		{ProductID: "P404", ProductName: "Retired Cactus", ProductImage: "", Price: 99, Quantity: 1, TotalPrice: 99},
	}

	liveProducts := []model.Product{
		{ID: "P002", Name: "Snake Plant", Image: "snake.jpg"},
		{ID: "P003", Name: "Fern", Image: "", Images: []string{"fern-1.jpg", "fern-2.jpg"}},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("GetByID", ctx, "OD12345678").Return(stored, nil)
	mockProductRepo.On("GetByIDs", ctx, []string{"P002", "P003", "P404"}).Return(liveProducts, nil)

	order, err := svc.GetByID(ctx, "OD12345678")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "snapshot.jpg", order.Items[0].ProductImage, "stored snapshot must win")
	assert.Equal(t, "snake.jpg", order.Items[1].ProductImage, "live primary image fills the gap")
	assert.Equal(t, "fern-1.jpg", order.Items[2].ProductImage, "first gallery image is the fallback")
	assert.Equal(t, "", order.Items[3].ProductImage, "deleted products leave the image empty")
	mockProductRepo.AssertExpectations(t)
}

func TestOrderService_GetByID_CatalogErrorDoesNotBreakDisplay(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	stored := testOrder("OD12345678")
	stored.Items[0].ProductImage = ""

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("GetByID", ctx, "OD12345678").Return(stored, nil)
	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return(nil, errors.New("catalog down"))

	order, err := svc.GetByID(ctx, "OD12345678")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "", order.Items[0].ProductImage)
}

func TestOrderService_List_PagesAreOneBased(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	filter := model.OrderFilter{UID: "user-1"}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("List", ctx, filter, listPageSize, 0).Return([]model.Order{}, nil).Once()
	mockOrderRepo.On("List", ctx, filter, listPageSize, listPageSize).Return([]model.Order{}, nil).Once()

	_, err := svc.List(ctx, filter, 0)
	require.NoError(t, err)

	_, err = svc.List(ctx, filter, 2)
	require.NoError(t, err)

	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_LegalTransition(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	stored := testOrder("OD12345678")
	stored.Status = model.OrderConfirmed

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("GetByID", ctx, "OD12345678").Return(stored, nil)
	mockOrderRepo.On("UpdateStatus", ctx, "OD12345678", model.OrderShipped, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.UpdateStatus(ctx, "OD12345678", model.OrderShipped)

	require.NoError(t, err)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_IllegalTransition(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	stored := testOrder("OD12345678")
	stored.Status = model.OrderPending

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("GetByID", ctx, "OD12345678").Return(stored, nil)

	err := svc.UpdateStatus(ctx, "OD12345678", model.OrderDelivered)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrIllegalStatusChange)
	mockOrderRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	err := svc.UpdateStatus(ctx, "OD12345678", model.OrderStatus("TELEPORTED"))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
	mockOrderRepo.AssertNotCalled(t, "GetByID")
}

func TestOrderService_UpdateStatus_OrderNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)

	svc := NewOrderService(mockOrderRepo, mockProductRepo, logger)

	mockOrderRepo.On("GetByID", ctx, "OD00000000").Return(nil, nil)

	err := svc.UpdateStatus(ctx, "OD00000000", model.OrderConfirmed)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
