package repository

import (
	"context"
	"fmt"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	// Upsert adds delta to the quantity of the matching cart line, never
	// dropping it below 1, or inserts a new line.
	Upsert(ctx context.Context, customerID uint, productType, productID string, delta int) error
	SetQuantity(ctx context.Context, customerID, itemID uint, quantity int) error
	Remove(ctx context.Context, customerID, itemID uint) error
	List(ctx context.Context, customerID uint) ([]*model.CartItem, error)
	DeleteItems(ctx context.Context, tx *gorm.DB, customerID uint, itemIDs []uint) error
}

type cartRepoImpl struct {
	store *client.Store
}

func NewCartRepository(store *client.Store) CartRepository {
	return &cartRepoImpl{
		store: store,
	}
}

func (r *cartRepoImpl) Upsert(ctx context.Context, customerID uint, productType, productID string, delta int) error {
	now := model.Now()
	item := &model.CartItem{
		CustomerID:  customerID,
		ProductType: productType,
		ProductID:   productID,
		Quantity:    max(1, delta),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// one statement, so concurrent adds to the same line cannot lose an
	// increment
	err := r.store.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_type"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr(r.store.Dialect().Greatest("1", "customer_cart_items.quantity + ?"), delta),
			"updated_at": now,
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}

	return nil
}

func (r *cartRepoImpl) SetQuantity(ctx context.Context, customerID, itemID uint, quantity int) error {
	if quantity < 1 {
		return apperror.Validation("quantity", "must be at least 1")
	}

	result := r.store.DB().WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": model.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("set cart item quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("cart_item")
	}

	return nil
}

func (r *cartRepoImpl) Remove(ctx context.Context, customerID, itemID uint) error {
	result := r.store.DB().WithContext(ctx).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("cart_item")
	}

	return nil
}

func (r *cartRepoImpl) List(ctx context.Context, customerID uint) ([]*model.CartItem, error) {
	items := []*model.CartItem{}
	err := r.store.DB().WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&items).
		Error
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	return items, nil
}

func (r *cartRepoImpl) DeleteItems(ctx context.Context, tx *gorm.DB, customerID uint, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}

	err := tx.WithContext(ctx).
		Where("customer_id = ? AND id IN ?", customerID, itemIDs).
		Delete(&model.CartItem{}).
		Error
	if err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}

	return nil
}
