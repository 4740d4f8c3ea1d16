package repository

import (
	"context"
	"fmt"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/model"

	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	// Add is idempotent: favoriting the same product twice keeps one row.
	Add(ctx context.Context, customerID uint, productType, productID string) error
	Remove(ctx context.Context, customerID, favoriteID uint) error
	List(ctx context.Context, customerID uint) ([]*model.Favorite, error)
}

type favoriteRepoImpl struct {
	store *client.Store
}

func NewFavoriteRepository(store *client.Store) FavoriteRepository {
	return &favoriteRepoImpl{
		store: store,
	}
}

func (r *favoriteRepoImpl) Add(ctx context.Context, customerID uint, productType, productID string) error {
	favorite := &model.Favorite{
		CustomerID:  customerID,
		ProductType: productType,
		ProductID:   productID,
		CreatedAt:   model.Now(),
	}

	err := r.store.DB().WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(favorite).
		Error
	if err != nil && !r.store.Dialect().IsUniqueViolation(err) {
		return fmt.Errorf("add favorite: %w", err)
	}

	return nil
}

func (r *favoriteRepoImpl) Remove(ctx context.Context, customerID, favoriteID uint) error {
	result := r.store.DB().WithContext(ctx).
		Where("id = ? AND customer_id = ?", favoriteID, customerID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("favorite")
	}

	return nil
}

func (r *favoriteRepoImpl) List(ctx context.Context, customerID uint) ([]*model.Favorite, error) {
	favorites := []*model.Favorite{}
	err := r.store.DB().WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&favorites).
		Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return favorites, nil
}
