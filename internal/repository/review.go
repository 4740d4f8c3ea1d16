package repository

import (
	"context"
	"fmt"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/model"
)

type ReviewRepository interface {
	// Create stores the review as approved when verified is true and as
	// pending otherwise, and fills its id, status and timestamps.
	Create(ctx context.Context, review *model.Review, verified bool) error
	ListForProduct(ctx context.Context, productType, productID string) ([]*model.ProductReview, error)
	ListForCustomer(ctx context.Context, customerID uint) ([]*model.Review, error)
}

type reviewRepoImpl struct {
	store *client.Store
}

func NewReviewRepository(store *client.Store) ReviewRepository {
	return &reviewRepoImpl{
		store: store,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review, verified bool) error {
	review.ID = 0
	review.VerifiedPurchase = verified
	review.Status = model.ReviewPending
	if verified {
		review.Status = model.ReviewApproved
	}
	now := model.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	err := r.store.DB().WithContext(ctx).Create(review).Error
	if err != nil {
		review.ID = 0
		if r.store.Dialect().IsUniqueViolation(err) {
			return apperror.Conflict("review", "already_reviewed", err)
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// ListForProduct returns the approved reviews of a product, newest first,
// with the reviewer's name.
func (r *reviewRepoImpl) ListForProduct(ctx context.Context, productType, productID string) ([]*model.ProductReview, error) {
	reviews := []*model.ProductReview{}
	err := r.store.DB().WithContext(ctx).
		Model(&model.Review{}).
		Select("customer_reviews.*, customers.first_name, customers.last_name").
		Joins("JOIN customers ON customers.id = customer_reviews.customer_id").
		Where(`
			customer_reviews.product_type = ?
			AND customer_reviews.product_id = ?
			AND customer_reviews.status = ?
		`,
			productType,
			productID,
			model.ReviewApproved,
		).
		Order("customer_reviews.created_at DESC").
		Order("customer_reviews.id DESC").
		Scan(&reviews).
		Error
	if err != nil {
		return nil, fmt.Errorf("list product reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepoImpl) ListForCustomer(ctx context.Context, customerID uint) ([]*model.Review, error) {
	reviews := []*model.Review{}
	err := r.store.DB().WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviews).
		Error
	if err != nil {
		return nil, fmt.Errorf("list customer reviews: %w", err)
	}

	return reviews, nil
}
