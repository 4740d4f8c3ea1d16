package repository

import (
	"context"
	"errors"
	"fmt"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	Upsert(ctx context.Context, item *model.Item) (uint, error)
	List(ctx context.Context) ([]*model.Item, error)
	Get(ctx context.Context, id uint) (*model.Item, error)
}

type itemRepoImpl struct {
	db *gorm.DB
}

func NewItemRepository(store *client.Store) ItemRepository {
	return &itemRepoImpl{
		db: store.DB(),
	}
}

// Upsert inserts the item or overwrites every mutable column of the row with
// the same listing id. It returns the id of the stored row.
func (r *itemRepoImpl) Upsert(ctx context.Context, item *model.Item) (uint, error) {
	if item.EtsyListingID == "" {
		return 0, apperror.Validation("etsy_listing_id", "required")
	}

	row := *item
	row.ID = 0
	row.UpdatedAt = model.Now()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "etsy_listing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"description",
			"price_amount",
			"price_currency",
			"image_url",
			"etsy_url",
			"updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, fmt.Errorf("upsert item: %w", err)
	}

	// the id reported by an upsert that hit the conflict branch differs
	// between backends, so read it back by the natural key
	var ids []uint
	err = r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("etsy_listing_id = ?", item.EtsyListingID).
		Pluck("id", &ids).
		Error
	if err != nil {
		return 0, fmt.Errorf("read item id: %w", err)
	}
	if len(ids) == 0 {
		return 0, apperror.NotFound("item")
	}

	return ids[0], nil
}

func (r *itemRepoImpl) List(ctx context.Context) ([]*model.Item, error) {
	items := []*model.Item{}
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&items).
		Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (r *itemRepoImpl) Get(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("item")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}
