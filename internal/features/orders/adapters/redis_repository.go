package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"order-service/internal/core/storage"
	"order-service/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

const (
	orderKeyPrefix          = "order:"
	orderSequenceKey        = "order:next_id"
	customerOrdersKeyPrefix = "customer_orders:"
)

// RedisOrderRepository implements ports.OrderRepository on top of the
// keyed-storage port. Orders are JSON records keyed by id, with a
// per-customer index set for history lookups and id allocation through an
// atomic counter.
type RedisOrderRepository struct {
	store storage.Store
}

// NewRedisOrderRepository creates a new RedisOrderRepository.
func NewRedisOrderRepository(store storage.Store) *RedisOrderRepository {
	return &RedisOrderRepository{store: store}
}

// Save persists the order. On first save a new id is allocated and the
// order is added to its customer's index.
func (r *RedisOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order.ID() == 0 {
		id, err := r.store.Increment(ctx, orderSequenceKey)
		if err != nil {
			return fmt.Errorf("failed to allocate order id: %w", err)
		}
		if err := order.AssignID(id); err != nil {
			return err
		}
		customerKey := customerOrdersKeyPrefix + order.CustomerID().String()
		if err := r.store.AddToSet(ctx, customerKey, strconv.FormatInt(id, 10)); err != nil {
			return fmt.Errorf("failed to index order for customer: %w", err)
		}
	}

	record := toRecord(order)
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := r.store.Set(ctx, orderKey(order.ID()), data, 0); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	return nil
}

// FindByID loads an order, returning (nil, nil) when it does not exist.
func (r *RedisOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	data, err := r.store.Get(ctx, orderKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}

	var record orderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order %d: %w", id, err)
	}

	return fromRecord(record)
}

// FindByCustomerID loads all orders in the customer's index. Ids present
// in the index but missing from storage are skipped.
func (r *RedisOrderRepository) FindByCustomerID(ctx context.Context, customerID domain.CustomerID) ([]*domain.Order, error) {
	members, err := r.store.SetMembers(ctx, customerOrdersKeyPrefix+customerID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read customer order index: %w", err)
	}

	orders := make([]*domain.Order, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt customer order index entry %q: %w", member, err)
		}

		order, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order != nil {
			orders = append(orders, order)
		}
	}

	return orders, nil
}

// Delete removes the order record and its customer index entry.
func (r *RedisOrderRepository) Delete(ctx context.Context, order *domain.Order) error {
	if err := r.store.Delete(ctx, orderKey(order.ID())); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", order.ID(), err)
	}

	customerKey := customerOrdersKeyPrefix + order.CustomerID().String()
	if err := r.store.RemoveFromSet(ctx, customerKey, strconv.FormatInt(order.ID(), 10)); err != nil {
		return fmt.Errorf("failed to unindex order %d: %w", order.ID(), err)
	}

	return nil
}

func orderKey(id int64) string {
	return orderKeyPrefix + strconv.FormatInt(id, 10)
}

// orderRecord is the stored shape of an order. Mapping to and from the
// domain keeps JSON concerns out of the aggregate.
type orderRecord struct {
	ID              int64             `json:"id"`
	CustomerID      int64             `json:"customer_id"`
	Items           []orderItemRecord `json:"items"`
	Status          string            `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	CouponCode      string            `json:"coupon_code,omitempty"`
	DiscountAmount  string            `json:"discount_amount"`
	OrderedAt       time.Time         `json:"ordered_at"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
}

type orderItemRecord struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

func toRecord(order *domain.Order) orderRecord {
	items := order.Items()
	itemRecords := make([]orderItemRecord, 0, len(items))
	for _, item := range items {
		itemRecords = append(itemRecords, orderItemRecord{
			ProductID:   item.ProductID().Value(),
			ProductName: item.ProductName(),
			Price:       item.Price().String(),
			Quantity:    item.Quantity().Value(),
		})
	}

	record := orderRecord{
		ID:              order.ID(),
		CustomerID:      order.CustomerID().Value(),
		Items:           itemRecords,
		Status:          string(order.Status()),
		ShippingAddress: order.ShippingAddress().Value(),
		DiscountAmount:  order.DiscountAmount().String(),
		OrderedAt:       order.OrderedAt(),
		PaidAt:          order.PaidAt(),
	}

	if coupon := order.CouponCode(); coupon != nil {
		record.CouponCode = coupon.Value()
	}

	return record
}

func fromRecord(record orderRecord) (*domain.Order, error) {
	customerID, err := domain.NewCustomerID(record.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("corrupt order record %d: %w", record.ID, err)
	}

	address, err := domain.NewShippingAddress(record.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("corrupt order record %d: %w", record.ID, err)
	}

	items := make([]domain.OrderItem, 0, len(record.Items))
	for _, itemRecord := range record.Items {
		item, err := itemFromRecord(itemRecord)
		if err != nil {
			return nil, fmt.Errorf("corrupt order record %d: %w", record.ID, err)
		}
		items = append(items, item)
	}

	status := domain.OrderStatus(record.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("corrupt order record %d: unknown status %q", record.ID, record.Status)
	}

	discountAmount, err := moneyFromString(record.DiscountAmount)
	if err != nil {
		return nil, fmt.Errorf("corrupt order record %d: %w", record.ID, err)
	}

	var couponCode *domain.CouponCode
	if record.CouponCode != "" {
		code, err := domain.NewCouponCode(record.CouponCode)
		if err != nil {
			return nil, fmt.Errorf("corrupt order record %d: %w", record.ID, err)
		}
		couponCode = &code
	}

	return domain.RehydrateOrder(domain.OrderState{
		ID:              record.ID,
		CustomerID:      customerID,
		Items:           items,
		Status:          status,
		ShippingAddress: address,
		CouponCode:      couponCode,
		DiscountAmount:  discountAmount,
		OrderedAt:       record.OrderedAt,
		PaidAt:          record.PaidAt,
	}), nil
}

func itemFromRecord(record orderItemRecord) (domain.OrderItem, error) {
	productID, err := domain.NewProductID(record.ProductID)
	if err != nil {
		return domain.OrderItem{}, err
	}

	price, err := moneyFromString(record.Price)
	if err != nil {
		return domain.OrderItem{}, err
	}

	quantity, err := domain.NewQuantity(record.Quantity)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return domain.NewOrderItem(productID, record.ProductName, price, quantity)
}

func moneyFromString(value string) (domain.Money, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return domain.Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return domain.NewMoney(amount)
}
