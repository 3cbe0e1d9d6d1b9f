package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(t *testing.T, productID int64, price int64, quantity int) OrderItem {
	t.Helper()
	pid, err := NewProductID(productID)
	require.NoError(t, err)
	qty, err := NewQuantity(quantity)
	require.NoError(t, err)
	item, err := NewOrderItem(pid, "Product", money(t, price), qty)
	require.NoError(t, err)
	return item
}

func testOrder(t *testing.T, items ...OrderItem) *Order {
	t.Helper()
	cid, err := NewCustomerID(42)
	require.NoError(t, err)
	addr, err := NewShippingAddress("123 Main Street, Springfield")
	require.NoError(t, err)
	order, err := CreateOrder(cid, items, addr)
	require.NoError(t, err)
	return order
}

func paidOrder(t *testing.T, paidAt time.Time) *Order {
	t.Helper()
	order := testOrder(t, testItem(t, 1, 25000, 2))
	require.NoError(t, order.AssignID(1))
	order.DrainEvents()
	return RehydrateOrder(OrderState{
		ID:              order.ID(),
		CustomerID:      order.CustomerID(),
		Items:           order.Items(),
		Status:          StatusPaid,
		ShippingAddress: order.ShippingAddress(),
		DiscountAmount:  ZeroMoney(),
		OrderedAt:       order.OrderedAt(),
		PaidAt:          &paidAt,
	})
}

func TestCreateOrder_StartsPendingWithEvent(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))

	assert.Equal(t, StatusPending, order.Status())
	assert.Equal(t, int64(0), order.ID())
	assert.True(t, order.DiscountAmount().IsZero())
	assert.WithinDuration(t, time.Now(), order.OrderedAt(), time.Minute)

	events := order.DrainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(42), created.CustomerID)
	assert.True(t, created.TotalAmount.Equals(money(t, 50000)))

	assert.Empty(t, order.DrainEvents())
}

func TestCreateOrder_RequiresItems(t *testing.T) {
	cid, _ := NewCustomerID(42)
	addr, _ := NewShippingAddress("123 Main Street, Springfield")

	_, err := CreateOrder(cid, nil, addr)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOrder_CalculateTotalAmount(t *testing.T) {
	order := testOrder(t,
		testItem(t, 1, 1000000, 2), // 2,000,000
		testItem(t, 2, 25000, 2),   // 50,000
	)

	assert.True(t, order.CalculateTotalAmount().Equals(money(t, 2050000)))
	assert.Equal(t, 2, order.ItemCount())
}

func TestOrder_AssignID(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))

	assert.ErrorIs(t, order.AssignID(0), ErrInvalidArgument)
	require.NoError(t, order.AssignID(7))
	assert.Equal(t, int64(7), order.ID())
	assert.ErrorIs(t, order.AssignID(8), ErrStateConflict)
}

func TestOrder_ApplyCoupon(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2)) // total 50,000
	coupon, err := NewCouponCode("SAVE10")
	require.NoError(t, err)

	require.NoError(t, order.ApplyCoupon(coupon, money(t, 5000)))
	require.NotNil(t, order.CouponCode())
	assert.Equal(t, "SAVE10", order.CouponCode().Value())
	assert.True(t, order.DiscountAmount().Equals(money(t, 5000)))
	assert.True(t, order.CalculateFinalAmount().Equals(money(t, 45000)))
}

func TestOrder_ApplyCouponExceedingTotal(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	coupon, _ := NewCouponCode("SAVE10")

	err := order.ApplyCoupon(coupon, money(t, 50001))
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Nil(t, order.CouponCode())
}

func TestOrder_SecondCouponOverwritesFirst(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))

	first, _ := NewCouponCode("FIRST1")
	second, _ := NewCouponCode("SECOND2")

	require.NoError(t, order.ApplyCoupon(first, money(t, 1000)))
	require.NoError(t, order.ApplyCoupon(second, money(t, 2000)))

	assert.Equal(t, "SECOND2", order.CouponCode().Value())
	assert.True(t, order.DiscountAmount().Equals(money(t, 2000)))
}

func TestOrder_Pay(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	require.NoError(t, order.AssignID(1))
	order.DrainEvents()

	require.NoError(t, order.Pay())

	assert.Equal(t, StatusPaid, order.Status())
	require.NotNil(t, order.PaidAt())

	events := order.DrainEvents()
	require.Len(t, events, 1)
	paid, ok := events[0].(OrderPaidEvent)
	require.True(t, ok)
	assert.Equal(t, int64(1), paid.OrderID)
	assert.True(t, paid.PaidAmount.Equals(money(t, 50000)))
}

func TestOrder_PayTwiceFails(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	require.NoError(t, order.Pay())

	err := order.Pay()
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestOrder_PayFullyDiscountedFails(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	coupon, _ := NewCouponCode("FREE100")
	require.NoError(t, order.ApplyCoupon(coupon, money(t, 50000)))

	err := order.Pay()
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Equal(t, StatusPending, order.Status())
}

func TestOrder_CancelByOwner(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	require.NoError(t, order.AssignID(1))
	order.DrainEvents()

	require.NoError(t, order.Cancel(order.CustomerID()))
	assert.Equal(t, StatusCancelled, order.Status())

	events := order.DrainEvents()
	require.Len(t, events, 1)
	cancelled, ok := events[0].(OrderCancelledEvent)
	require.True(t, ok)
	assert.Equal(t, int64(1), cancelled.OrderID)
	assert.Len(t, cancelled.Items, 1)
	assert.Nil(t, cancelled.CouponCode)
}

func TestOrder_CancelByStrangerFails(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	stranger, _ := NewCustomerID(7)

	err := order.Cancel(stranger)
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Equal(t, StatusPending, order.Status())
}

func TestOrder_CancelPaidWithinWindow(t *testing.T) {
	// Just under the 24h deadline; the window is inclusive of its edge.
	order := paidOrder(t, time.Now().Add(-24*time.Hour+time.Minute))

	require.NoError(t, order.Cancel(order.CustomerID()))
	assert.Equal(t, StatusCancelled, order.Status())
}

func TestOrder_CancelPaidAfterWindowFails(t *testing.T) {
	order := paidOrder(t, time.Now().Add(-25*time.Hour))

	err := order.Cancel(order.CustomerID())
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Equal(t, StatusPaid, order.Status())
}

func TestOrder_CancelShippedFails(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	require.NoError(t, order.Pay())
	require.NoError(t, order.Ship())

	err := order.Cancel(order.CustomerID())
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestOrder_Ship(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	require.NoError(t, order.Pay())
	order.DrainEvents()

	require.NoError(t, order.Ship())
	assert.Equal(t, StatusShipped, order.Status())
	assert.Empty(t, order.DrainEvents())
}

func TestOrder_ShipUnpaidFails(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))

	err := order.Ship()
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestOrder_IsCancellable(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))
	assert.True(t, order.IsCancellable())

	within := paidOrder(t, time.Now().Add(-24*time.Hour+time.Minute))
	assert.True(t, within.IsCancellable())

	expired := paidOrder(t, time.Now().Add(-25*time.Hour))
	assert.False(t, expired.IsCancellable())

	require.NoError(t, order.Cancel(order.CustomerID()))
	assert.False(t, order.IsCancellable())
}

func TestOrder_ItemsReturnsCopy(t *testing.T) {
	order := testOrder(t, testItem(t, 1, 25000, 2))

	items := order.Items()
	qty, _ := NewQuantity(99)
	items[0].ChangeQuantity(qty)

	assert.Equal(t, 2, order.Items()[0].Quantity().Value())
}

func TestRehydrateOrder_NoEvents(t *testing.T) {
	order := paidOrder(t, time.Now())
	assert.Empty(t, order.DrainEvents())
	assert.Equal(t, StatusPaid, order.Status())
}
