package integration

import (
	"context"
	"testing"
	"time"

	"plant-kart/internal/model"
	"plant-kart/internal/pricing"
	"plant-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPayment(t *testing.T, repo repository.PaymentRepository, status model.PaymentStatus) *model.Payment {
	t.Helper()
	payment := &model.Payment{
		PaymentID:        uuid.NewString(),
		GatewayOrderID:   "order_rzp_" + uuid.NewString()[:8],
		GatewayPaymentID: "pay_" + uuid.NewString()[:8],
		Method:           "upi",
		Status:           status,
		Amount:           1100,
		CreatedAt:        time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Create(context.Background(), payment))
	return payment
}

func buildOrder(uid, paymentID string) *model.Order {
	now := time.Now().UTC().Truncate(time.Millisecond)
	orderID := model.NewOrderID()
	priced := pricing.Compute(1000, 5, 50, 0, nil)
	return &model.Order{
		OrderID:   orderID,
		UID:       uid,
		Status:    model.OrderPending,
		InvoiceID: model.NewInvoiceID(now),
		Items: []model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: "P001", ProductName: "Monstera Deliciosa", ProductImage: "monstera.jpg", Price: 500, Quantity: 2, TotalPrice: 1000},
		},
		DeliveryAddress: model.Address{
			FullName: "Asha Verma",
			Phone:    "9876543210",
			Line1:    "12 MG Road",
			City:     "Bengaluru",
			State:    "Karnataka",
			Pincode:  "560001",
		},
		PaymentID: paymentID,
		Pricing:   priced,
		Timestamps: model.OrderTimestamps{
			OrderedAt: now,
			UpdatedAt: now,
		},
	}
}

func insertOrder(t *testing.T, repo repository.OrderRepository, order *model.Order) {
	t.Helper()
	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, order.Items))
	require.NoError(t, tx.Commit(ctx))
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	paymentRepo := repository.NewPaymentRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Round trip preserves the order and its payment", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		payment := seedPayment(t, paymentRepo, model.PaymentSuccess)
		order := buildOrder("user-1", payment.PaymentID)
		insertOrder(t, orderRepo, order)

		got, err := orderRepo.GetByID(ctx, order.OrderID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, order.OrderID, got.OrderID)
		assert.Equal(t, order.UID, got.UID)
		assert.Equal(t, model.OrderPending, got.Status)
		assert.Equal(t, order.InvoiceID, got.InvoiceID)
		assert.Equal(t, order.DeliveryAddress, got.DeliveryAddress)

		require.Len(t, got.Items, 1)
		assert.Equal(t, "Monstera Deliciosa", got.Items[0].ProductName)
		assert.Equal(t, 1000.0, got.Items[0].TotalPrice)

		// The persisted breakdown still satisfies the pricing identity.
		assert.True(t, pricing.Consistent(got.Pricing))
		assert.Equal(t, 1100.0, got.Pricing.GrandTotal)

		require.NotNil(t, got.Payment)
		assert.Equal(t, model.PaymentSuccess, got.Payment.Status)
		assert.Equal(t, payment.GatewayOrderID, got.Payment.GatewayOrderID)
	})

	t.Run("GetByID returns nil for an unknown order", func(t *testing.T) {
		got, err := orderRepo.GetByID(ctx, "OD00000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("List filters by uid and status, newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		payment := seedPayment(t, paymentRepo, model.PaymentSuccess)

		first := buildOrder("user-1", payment.PaymentID)
		first.Timestamps.OrderedAt = time.Now().UTC().Add(-time.Hour)
		insertOrder(t, orderRepo, first)

		second := buildOrder("user-1", payment.PaymentID)
		insertOrder(t, orderRepo, second)

		other := buildOrder("user-2", payment.PaymentID)
		insertOrder(t, orderRepo, other)

		orders, err := orderRepo.List(ctx, model.OrderFilter{UID: "user-1"}, 10, 0)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.OrderID, orders[0].OrderID)
		assert.Equal(t, first.OrderID, orders[1].OrderID)

		require.NoError(t, orderRepo.UpdateStatus(ctx, second.OrderID, model.OrderConfirmed, time.Now()))

		confirmed := model.OrderConfirmed
		orders, err = orderRepo.List(ctx, model.OrderFilter{UID: "user-1", Status: &confirmed}, 10, 0)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, second.OrderID, orders[0].OrderID)
	})

	t.Run("UpdateStatus stamps the milestone timestamp", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		payment := seedPayment(t, paymentRepo, model.PaymentSuccess)
		order := buildOrder("user-1", payment.PaymentID)
		insertOrder(t, orderRepo, order)

		at := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, orderRepo.UpdateStatus(ctx, order.OrderID, model.OrderConfirmed, at))

		got, err := orderRepo.GetByID(ctx, order.OrderID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.OrderConfirmed, got.Status)
		require.NotNil(t, got.Timestamps.ConfirmedAt)
		assert.WithinDuration(t, at, *got.Timestamps.ConfirmedAt, time.Second)
		assert.Nil(t, got.Timestamps.ShippedAt)
	})

	t.Run("UpdateStatus on an unknown order", func(t *testing.T) {
		err := orderRepo.UpdateStatus(ctx, "OD00000000", model.OrderConfirmed, time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})

	t.Run("AppendUserIndex tolerates duplicates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		payment := seedPayment(t, paymentRepo, model.PaymentSuccess)
		order := buildOrder("user-1", payment.PaymentID)
		insertOrder(t, orderRepo, order)

		require.NoError(t, orderRepo.AppendUserIndex(ctx, "user-1", order.OrderID))
		require.NoError(t, orderRepo.AppendUserIndex(ctx, "user-1", order.OrderID))

		var count int
		err := testDB.Pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM user_order_index WHERE uid = $1 AND order_id = $2",
			"user-1", order.OrderID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestPaymentRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewPaymentRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		payment := seedPayment(t, repo, model.PaymentFailed)

		got, err := repo.GetByID(ctx, payment.PaymentID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.PaymentFailed, got.Status)
		assert.Equal(t, payment.Amount, got.Amount)
	})

	t.Run("GetByID returns nil for an unknown payment", func(t *testing.T) {
		got, err := repo.GetByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAll returns seeded products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, products, 5)
		assert.Equal(t, "P001", products[0].ID)
	})

	t.Run("GetByIDs returns gallery images", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetByIDs(ctx, []string{"P003"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "", products[0].Image)
		assert.Equal(t, []string{"fern-1.jpg", "fern-2.jpg"}, products[0].Images)
		assert.Equal(t, "fern-1.jpg", products[0].DisplayImage())
	})

	t.Run("ValidateProductsExist", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		require.NoError(t, repo.ValidateProductsExist(ctx, []string{"P001", "P002"}))

		err := repo.ValidateProductsExist(ctx, []string{"P001", "P999"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}
