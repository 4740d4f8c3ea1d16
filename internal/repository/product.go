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

type ManualProductRepository interface {
	Create(ctx context.Context, product *model.ManualProduct, images []model.ImageRef) (uint, error)
	List(ctx context.Context, featuredOnly bool) ([]*model.ManualProduct, error)
	Get(ctx context.Context, id uint) (*model.ManualProduct, error)
	// Update overwrites every scalar column. A nil images slice leaves the
	// stored images alone; any non-nil slice replaces them.
	Update(ctx context.Context, id uint, product *model.ManualProduct, images []model.ImageRef) error
	Delete(ctx context.Context, id uint) (bool, error)
	ListImages(ctx context.Context, productID uint) ([]*model.ProductImage, error)
}

type manualProductRepoImpl struct {
	store *client.Store
}

func NewManualProductRepository(store *client.Store) ManualProductRepository {
	return &manualProductRepoImpl{
		store: store,
	}
}

func encodeListFields(product *model.ManualProduct) error {
	category, err := model.EncodeListField(product.CategoryValue)
	if err != nil {
		return apperror.Validation("category", err.Error())
	}
	materials, err := model.EncodeListField(product.MaterialsValue)
	if err != nil {
		return apperror.Validation("materials", err.Error())
	}
	product.Category = category
	product.Materials = materials
	return nil
}

func insertImages(tx *gorm.DB, productID uint, images []model.ImageRef) error {
	rows := make([]*model.ProductImage, 0, len(images))
	for idx, image := range images {
		location := image.Location()
		if location == "" {
			continue
		}
		rows = append(rows, &model.ProductImage{
			ProductID:    productID,
			ImageURL:     location,
			MediaType:    image.Kind(),
			DisplayOrder: idx,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *manualProductRepoImpl) Create(ctx context.Context, product *model.ManualProduct, images []model.ImageRef) (uint, error) {
	row := *product
	row.ID = 0
	row.Images = nil
	if err := encodeListFields(&row); err != nil {
		return 0, err
	}
	now := model.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return fmt.Errorf("insert manual product: %w", err)
		}
		if err := insertImages(tx, row.ID, images); err != nil {
			return fmt.Errorf("insert product images: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return row.ID, nil
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC").Order("id ASC")
}

func (r *manualProductRepoImpl) List(ctx context.Context, featuredOnly bool) ([]*model.ManualProduct, error) {
	products := []*model.ManualProduct{}
	query := r.store.DB().WithContext(ctx).
		Preload("Images", orderedImages).
		Order("created_at DESC").
		Order("id DESC")
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list manual products: %w", err)
	}

	for _, product := range products {
		product.Decode()
	}
	return products, nil
}

func (r *manualProductRepoImpl) Get(ctx context.Context, id uint) (*model.ManualProduct, error) {
	var product model.ManualProduct
	err := r.store.DB().WithContext(ctx).
		Preload("Images", orderedImages).
		Where("id = ?", id).
		First(&product).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("manual_product")
		}
		return nil, fmt.Errorf("get manual product: %w", err)
	}

	product.Decode()
	return &product, nil
}

func (r *manualProductRepoImpl) Update(ctx context.Context, id uint, product *model.ManualProduct, images []model.ImageRef) error {
	row := *product
	if err := encodeListFields(&row); err != nil {
		return err
	}

	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ManualProduct{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("check manual product: %w", err)
		}
		if count == 0 {
			return apperror.NotFound("manual_product")
		}

		err := tx.Model(&model.ManualProduct{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"name":        row.Name,
				"description": row.Description,
				"category":    row.Category,
				"materials":   row.Materials,
				"width":       row.Width,
				"height":      row.Height,
				"depth":       row.Depth,
				"price":       row.Price,
				"quantity":    row.Quantity,
				"is_featured": row.IsFeatured,
				"updated_at":  model.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("update manual product: %w", err)
		}

		if images == nil {
			return nil
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return fmt.Errorf("delete product images: %w", err)
		}
		if err := insertImages(tx, id, images); err != nil {
			return fmt.Errorf("insert product images: %w", err)
		}
		return nil
	})
}

func (r *manualProductRepoImpl) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return fmt.Errorf("delete product images: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&model.ManualProduct{})
		if result.Error != nil {
			return fmt.Errorf("delete manual product: %w", result.Error)
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func (r *manualProductRepoImpl) ListImages(ctx context.Context, productID uint) ([]*model.ProductImage, error) {
	images := []*model.ProductImage{}
	err := orderedImages(r.store.DB().WithContext(ctx)).
		Where("product_id = ?", productID).
		Find(&images).
		Error
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}

	return images, nil
}
