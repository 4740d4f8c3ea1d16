package service

import (
	"context"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/model"
	"storefront-commerce/internal/repository"
	"strings"
)

const CodeMissingListingID = "missing_listing_id"

type CatalogService interface {
	ListItems(ctx context.Context) ([]*model.Item, error)
	GetItem(ctx context.Context, id uint) (*model.Item, error)
	// ImportListing resolves a listing id or url, fetches the listing and
	// stores it as an item.
	ImportListing(ctx context.Context, value string) (*model.Item, error)

	ListManualProducts(ctx context.Context, featuredOnly bool) ([]*model.ManualProduct, error)
	GetManualProduct(ctx context.Context, id uint) (*model.ManualProduct, error)
	CreateManualProduct(ctx context.Context, req *dto.ManualProductRequest) (*model.ManualProduct, error)
	UpdateManualProduct(ctx context.Context, id uint, req *dto.ManualProductRequest) (*model.ManualProduct, error)
	DeleteManualProduct(ctx context.Context, id uint) error
}

type catalogServiceImpl struct {
	etsyClient  client.EtsyClient
	itemRepo    repository.ItemRepository
	productRepo repository.ManualProductRepository
}

func NewCatalogService(
	etsyClient client.EtsyClient,
	itemRepo repository.ItemRepository,
	productRepo repository.ManualProductRepository,
) CatalogService {
	return &catalogServiceImpl{
		etsyClient:  etsyClient,
		itemRepo:    itemRepo,
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) ListItems(ctx context.Context) ([]*model.Item, error) {
	return s.itemRepo.List(ctx)
}

func (s *catalogServiceImpl) GetItem(ctx context.Context, id uint) (*model.Item, error) {
	return s.itemRepo.Get(ctx, id)
}

func (s *catalogServiceImpl) ImportListing(ctx context.Context, value string) (*model.Item, error) {
	listingID, ok := client.ResolveListingID(value)
	if !ok {
		return nil, apperror.Validation("", CodeMissingListingID)
	}

	listing, err := s.etsyClient.FetchListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	id, err := s.itemRepo.Upsert(ctx, &model.Item{
		EtsyListingID: listing.ListingID,
		Title:         listing.Title,
		Description:   listing.Description,
		PriceAmount:   listing.PriceAmount,
		PriceCurrency: listing.PriceCurrency,
		ImageURL:      listing.ImageURL,
		EtsyURL:       listing.URL,
	})
	if err != nil {
		return nil, err
	}

	return s.itemRepo.Get(ctx, id)
}

func (s *catalogServiceImpl) ListManualProducts(ctx context.Context, featuredOnly bool) ([]*model.ManualProduct, error) {
	return s.productRepo.List(ctx, featuredOnly)
}

func (s *catalogServiceImpl) GetManualProduct(ctx context.Context, id uint) (*model.ManualProduct, error) {
	return s.productRepo.Get(ctx, id)
}

func validateManualProduct(req *dto.ManualProductRequest) (*model.ManualProduct, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name", "required")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperror.Validation("description", "required")
	}
	if req.Price == nil {
		return nil, apperror.Validation("price", "required")
	}
	if *req.Price < 0 {
		return nil, apperror.Validation("price", "must be >= 0")
	}
	if req.Quantity == nil {
		return nil, apperror.Validation("quantity", "required")
	}
	if *req.Quantity < 0 {
		return nil, apperror.Validation("quantity", "must be >= 0")
	}
	for _, image := range req.Images {
		if kind := image.Kind(); kind != model.MediaImage && kind != model.MediaVideo {
			return nil, apperror.Validation("images", "media type must be image or video")
		}
	}

	return &model.ManualProduct{
		Name:           name,
		Description:    description,
		CategoryValue:  req.Category,
		MaterialsValue: req.Materials,
		Width:          req.Width,
		Height:         req.Height,
		Depth:          req.Depth,
		Price:          *req.Price,
		Quantity:       *req.Quantity,
		IsFeatured:     req.IsFeatured,
	}, nil
}

func (s *catalogServiceImpl) CreateManualProduct(ctx context.Context, req *dto.ManualProductRequest) (*model.ManualProduct, error) {
	product, err := validateManualProduct(req)
	if err != nil {
		return nil, err
	}

	id, err := s.productRepo.Create(ctx, product, req.Images)
	if err != nil {
		return nil, err
	}
	return s.productRepo.Get(ctx, id)
}

func (s *catalogServiceImpl) UpdateManualProduct(ctx context.Context, id uint, req *dto.ManualProductRequest) (*model.ManualProduct, error) {
	product, err := validateManualProduct(req)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, id, product, req.Images); err != nil {
		return nil, err
	}
	return s.productRepo.Get(ctx, id)
}

func (s *catalogServiceImpl) DeleteManualProduct(ctx context.Context, id uint) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("manual_product")
	}
	return nil
}
