package service

import (
	"context"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/model"
	"storefront-commerce/internal/repository"
	"strings"
)

const CodePurchaseRequired = "purchase_required"

type ReviewService interface {
	// Create publishes a review. Only customers who have ordered the product
	// may review it.
	Create(ctx context.Context, customerID uint, req *dto.ReviewRequest) (*model.Review, error)
	ListForProduct(ctx context.Context, productType, productID string) ([]*model.ProductReview, error)
	ListForCustomer(ctx context.Context, customerID uint) ([]*model.Review, error)
}

type reviewServiceImpl struct {
	orderRepo  repository.OrderRepository
	reviewRepo repository.ReviewRepository
}

func NewReviewService(
	orderRepo repository.OrderRepository,
	reviewRepo repository.ReviewRepository,
) ReviewService {
	return &reviewServiceImpl{
		orderRepo:  orderRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *reviewServiceImpl) Create(ctx context.Context, customerID uint, req *dto.ReviewRequest) (*model.Review, error) {
	productType, productID, err := validateProductRef(&req.ProductRef)
	if err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.Validation("rating", "must be between 1 and 5")
	}

	verified, err := s.orderRepo.HasVerifiedPurchase(ctx, customerID, productType, productID)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, apperror.Auth(CodePurchaseRequired)
	}

	review := &model.Review{
		CustomerID:  customerID,
		ProductType: productType,
		ProductID:   productID,
		Rating:      req.Rating,
		Title:       strings.TrimSpace(req.Title),
		Body:        strings.TrimSpace(req.Body),
	}
	if err := s.reviewRepo.Create(ctx, review, verified); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewServiceImpl) ListForProduct(ctx context.Context, productType, productID string) ([]*model.ProductReview, error) {
	productType = strings.ToLower(strings.TrimSpace(productType))
	if !model.ValidProductType(productType) {
		return nil, apperror.Validation("product_type", "must be etsy or manual")
	}
	productID, err := canonicalProductID(productID)
	if err != nil {
		return nil, err
	}
	return s.reviewRepo.ListForProduct(ctx, productType, productID)
}

func (s *reviewServiceImpl) ListForCustomer(ctx context.Context, customerID uint) ([]*model.Review, error) {
	return s.reviewRepo.ListForCustomer(ctx, customerID)
}
