package adapters

import (
	"context"
	"testing"
	"time"

	"order-service/internal/core/storage"
	"order-service/internal/features/orders/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *RedisOrderRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := storage.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return NewRedisOrderRepository(adapter)
}

func newTestOrder(t *testing.T, customerID int64) *domain.Order {
	t.Helper()

	cid, err := domain.NewCustomerID(customerID)
	require.NoError(t, err)

	pid, err := domain.NewProductID(1)
	require.NoError(t, err)
	price, err := domain.NewMoneyFromInt(25000)
	require.NoError(t, err)
	qty, err := domain.NewQuantity(2)
	require.NoError(t, err)
	item, err := domain.NewOrderItem(pid, "Mechanical Keyboard", price, qty)
	require.NoError(t, err)

	address, err := domain.NewShippingAddress("123 Main Street, Springfield")
	require.NoError(t, err)

	order, err := domain.CreateOrder(cid, []domain.OrderItem{item}, address)
	require.NoError(t, err)
	return order
}

func TestRedisOrderRepository_SaveAssignsSequentialIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := newTestOrder(t, 1)
	second := newTestOrder(t, 1)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	assert.Equal(t, int64(1), first.ID())
	assert.Equal(t, int64(2), second.ID())
}

func TestRedisOrderRepository_FindByIDRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder(t, 7)
	require.NoError(t, repo.Save(ctx, order))

	loaded, err := repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, order.ID(), loaded.ID())
	assert.Equal(t, order.CustomerID(), loaded.CustomerID())
	assert.Equal(t, domain.StatusPending, loaded.Status())
	assert.Equal(t, order.ShippingAddress(), loaded.ShippingAddress())
	require.Len(t, loaded.Items(), 1)
	assert.True(t, order.CalculateTotalAmount().Equals(loaded.CalculateTotalAmount()))
	assert.Empty(t, loaded.DrainEvents())
}

func TestRedisOrderRepository_FindByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	loaded, err := repo.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisOrderRepository_SavePreservesPaidState(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder(t, 7)
	require.NoError(t, repo.Save(ctx, order))
	require.NoError(t, order.Pay())
	require.NoError(t, repo.Save(ctx, order))

	loaded, err := repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, domain.StatusPaid, loaded.Status())
	require.NotNil(t, loaded.PaidAt())
	assert.WithinDuration(t, time.Now(), *loaded.PaidAt(), time.Minute)
}

func TestRedisOrderRepository_FindByCustomerID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestOrder(t, 3)))
	require.NoError(t, repo.Save(ctx, newTestOrder(t, 3)))
	require.NoError(t, repo.Save(ctx, newTestOrder(t, 4)))

	cid, err := domain.NewCustomerID(3)
	require.NoError(t, err)

	orders, err := repo.FindByCustomerID(ctx, cid)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	other, err := domain.NewCustomerID(5)
	require.NoError(t, err)
	none, err := repo.FindByCustomerID(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisOrderRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := newTestOrder(t, 9)
	require.NoError(t, repo.Save(ctx, order))
	require.NoError(t, repo.Delete(ctx, order))

	loaded, err := repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	orders, err := repo.FindByCustomerID(ctx, order.CustomerID())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
