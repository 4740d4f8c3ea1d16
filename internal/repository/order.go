package repository

import (
	"context"
	"fmt"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	List(ctx context.Context, customerID uint) ([]*model.Order, error)
	// ListItems returns nothing when the order belongs to another customer.
	ListItems(ctx context.Context, customerID, orderID uint) ([]*model.OrderItem, error)
	HasVerifiedPurchase(ctx context.Context, customerID uint, productType, productID string) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(store *client.Store) OrderRepository {
	return &orderRepoImpl{
		db: store.DB(),
	}
}

// Create inserts the order together with its items.
func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	now := model.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *orderRepoImpl) List(ctx context.Context, customerID uint) ([]*model.Order, error) {
	orders := []*model.Order{}
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepoImpl) ListItems(ctx context.Context, customerID, orderID uint) ([]*model.OrderItem, error) {
	items := []*model.OrderItem{}
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("customer_order_items.*").
		Joins("JOIN customer_orders ON customer_orders.id = customer_order_items.order_id").
		Where(`
			customer_order_items.order_id = ?
			AND customer_orders.customer_id = ?
		`,
			orderID,
			customerID,
		).
		Order("customer_order_items.id ASC").
		Find(&items).
		Error
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	return items, nil
}

// HasVerifiedPurchase reports whether any of the customer's orders, in any
// status, contains the product.
func (r *orderRepoImpl) HasVerifiedPurchase(ctx context.Context, customerID uint, productType, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Joins("JOIN customer_orders ON customer_orders.id = customer_order_items.order_id").
		Where(`
			customer_orders.customer_id = ?
			AND customer_order_items.product_type = ?
			AND customer_order_items.product_id = ?
		`,
			customerID,
			productType,
			productID,
		).
		Count(&count).
		Error
	if err != nil {
		return false, fmt.Errorf("check verified purchase: %w", err)
	}

	return count > 0, nil
}
