package service

import (
	"context"
	"fmt"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/model"
	"storefront-commerce/internal/repository"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultCurrency = "USD"

type CustomerService interface {
	ListAddresses(ctx context.Context, customerID uint) ([]*model.CustomerAddress, error)
	AddAddress(ctx context.Context, customerID uint, req *dto.AddressRequest) (*model.CustomerAddress, error)

	ListFavorites(ctx context.Context, customerID uint) ([]*model.Favorite, error)
	AddFavorite(ctx context.Context, customerID uint, req *dto.ProductRef) error
	RemoveFavorite(ctx context.Context, customerID, favoriteID uint) error

	ListCart(ctx context.Context, customerID uint) ([]*model.CartItem, error)
	AddToCart(ctx context.Context, customerID uint, req *dto.CartRequest) error
	SetCartQuantity(ctx context.Context, customerID, itemID uint, quantity int) error
	RemoveCartItem(ctx context.Context, customerID, itemID uint) error

	ListOrders(ctx context.Context, customerID uint) ([]*model.Order, error)
	ListOrderItems(ctx context.Context, customerID, orderID uint) ([]*model.OrderItem, error)
	// Checkout turns the cart into a pending order and empties the cart.
	Checkout(ctx context.Context, customerID uint) (*model.Order, error)
}

type customerServiceImpl struct {
	store        *client.Store
	customerRepo repository.CustomerRepository
	favoriteRepo repository.FavoriteRepository
	cartRepo     repository.CartRepository
	orderRepo    repository.OrderRepository
	products     *productLookup
}

func NewCustomerService(
	store *client.Store,
	customerRepo repository.CustomerRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	productRepo repository.ManualProductRepository,
) CustomerService {
	return &customerServiceImpl{
		store:        store,
		customerRepo: customerRepo,
		favoriteRepo: favoriteRepo,
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		products: &productLookup{
			itemRepo:    itemRepo,
			productRepo: productRepo,
		},
	}
}

// productSnapshot is what an order line records about a product.
type productSnapshot struct {
	Title    string
	Price    decimal.Decimal
	Currency string
	ImageURL string
}

// productLookup resolves a (product_type, product_id) pair against the
// catalog. Marketplace products are addressed by their item row id.
type productLookup struct {
	itemRepo    repository.ItemRepository
	productRepo repository.ManualProductRepository
}

func validateProductRef(ref *dto.ProductRef) (string, string, error) {
	productType := strings.ToLower(strings.TrimSpace(ref.ProductType))
	if !model.ValidProductType(productType) {
		return "", "", apperror.Validation("product_type", "must be etsy or manual")
	}
	productID, err := canonicalProductID(string(ref.ProductID))
	if err != nil {
		return "", "", err
	}
	return productType, productID, nil
}

// canonicalProductID renders a product id in its one stored spelling, so
// "7", "07" and " 7" all key the same favorite, cart line and review.
func canonicalProductID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperror.Validation("product_id", "required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return "", apperror.Validation("product_id", "must be a positive integer")
	}
	return strconv.FormatUint(id, 10), nil
}

func (l *productLookup) snapshot(ctx context.Context, productType, productID string) (*productSnapshot, error) {
	id, err := strconv.ParseUint(productID, 10, 64)
	if err != nil {
		return nil, apperror.NotFound("product")
	}

	switch productType {
	case model.ProductTypeEtsy:
		item, err := l.itemRepo.Get(ctx, uint(id))
		if err != nil {
			return nil, err
		}
		price := decimal.Zero
		if item.PriceAmount != "" {
			price, err = decimal.NewFromString(item.PriceAmount)
			if err != nil {
				return nil, fmt.Errorf("parse item %d price %q: %w", item.ID, item.PriceAmount, err)
			}
		}
		currency := item.PriceCurrency
		if currency == "" {
			currency = defaultCurrency
		}
		return &productSnapshot{
			Title:    item.Title,
			Price:    price,
			Currency: currency,
			ImageURL: item.ImageURL,
		}, nil

	case model.ProductTypeManual:
		product, err := l.productRepo.Get(ctx, uint(id))
		if err != nil {
			return nil, err
		}
		snapshot := &productSnapshot{
			Title:    product.Name,
			Price:    decimal.NewFromFloat(product.Price),
			Currency: defaultCurrency,
		}
		if len(product.Images) > 0 {
			snapshot.ImageURL = product.Images[0].ImageURL
		}
		return snapshot, nil
	}

	return nil, apperror.Validation("product_type", "must be etsy or manual")
}

func (s *customerServiceImpl) ListAddresses(ctx context.Context, customerID uint) ([]*model.CustomerAddress, error) {
	return s.customerRepo.ListAddresses(ctx, customerID)
}

func (s *customerServiceImpl) AddAddress(ctx context.Context, customerID uint, req *dto.AddressRequest) (*model.CustomerAddress, error) {
	line1 := strings.TrimSpace(req.Line1)
	if line1 == "" {
		return nil, apperror.Validation("line1", "required")
	}

	address := &model.CustomerAddress{
		CustomerID: customerID,
		Label:      strings.TrimSpace(req.Label),
		Line1:      line1,
		Line2:      strings.TrimSpace(req.Line2),
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Country:    strings.TrimSpace(req.Country),
		IsDefault:  req.IsDefault,
	}
	if err := s.customerRepo.AddAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *customerServiceImpl) ListFavorites(ctx context.Context, customerID uint) ([]*model.Favorite, error) {
	return s.favoriteRepo.List(ctx, customerID)
}

func (s *customerServiceImpl) AddFavorite(ctx context.Context, customerID uint, req *dto.ProductRef) error {
	productType, productID, err := validateProductRef(req)
	if err != nil {
		return err
	}
	if _, err := s.products.snapshot(ctx, productType, productID); err != nil {
		return err
	}

	return s.favoriteRepo.Add(ctx, customerID, productType, productID)
}

func (s *customerServiceImpl) RemoveFavorite(ctx context.Context, customerID, favoriteID uint) error {
	return s.favoriteRepo.Remove(ctx, customerID, favoriteID)
}

func (s *customerServiceImpl) ListCart(ctx context.Context, customerID uint) ([]*model.CartItem, error) {
	return s.cartRepo.List(ctx, customerID)
}

func (s *customerServiceImpl) AddToCart(ctx context.Context, customerID uint, req *dto.CartRequest) error {
	productType, productID, err := validateProductRef(&req.ProductRef)
	if err != nil {
		return err
	}
	delta := 1
	if req.Quantity != nil {
		delta = *req.Quantity
	}
	if delta == 0 {
		return apperror.Validation("quantity", "must not be zero")
	}
	if _, err := s.products.snapshot(ctx, productType, productID); err != nil {
		return err
	}

	return s.cartRepo.Upsert(ctx, customerID, productType, productID, delta)
}

func (s *customerServiceImpl) SetCartQuantity(ctx context.Context, customerID, itemID uint, quantity int) error {
	return s.cartRepo.SetQuantity(ctx, customerID, itemID, quantity)
}

func (s *customerServiceImpl) RemoveCartItem(ctx context.Context, customerID, itemID uint) error {
	return s.cartRepo.Remove(ctx, customerID, itemID)
}

func (s *customerServiceImpl) ListOrders(ctx context.Context, customerID uint) ([]*model.Order, error) {
	return s.orderRepo.List(ctx, customerID)
}

func (s *customerServiceImpl) ListOrderItems(ctx context.Context, customerID, orderID uint) ([]*model.OrderItem, error) {
	return s.orderRepo.ListItems(ctx, customerID, orderID)
}

func (s *customerServiceImpl) Checkout(ctx context.Context, customerID uint) (*model.Order, error) {
	cart, err := s.cartRepo.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, apperror.Validation("cart", "empty")
	}

	total := decimal.Zero
	currency := ""
	items := make([]model.OrderItem, 0, len(cart))
	cartIDs := make([]uint, 0, len(cart))
	// oldest line first so the order reads in the sequence things were added
	for i := len(cart) - 1; i >= 0; i-- {
		line := cart[i]
		snapshot, err := s.products.snapshot(ctx, line.ProductType, line.ProductID)
		if err != nil {
			return nil, err
		}
		if currency == "" {
			currency = snapshot.Currency
		} else if snapshot.Currency != currency {
			return nil, apperror.Validation("currency", "cart mixes currencies")
		}

		total = total.Add(snapshot.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, model.OrderItem{
			ProductType: line.ProductType,
			ProductID:   line.ProductID,
			Title:       snapshot.Title,
			Price:       snapshot.Price.InexactFloat64(),
			Quantity:    line.Quantity,
			ImageURL:    snapshot.ImageURL,
		})
		cartIDs = append(cartIDs, line.ID)
	}

	order := &model.Order{
		CustomerID:  customerID,
		OrderNumber: "ORD-" + strings.ToUpper(uuid.NewString()),
		Status:      model.OrderStatusPending,
		TotalAmount: total.Round(2).InexactFloat64(),
		Currency:    currency,
		Items:       items,
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		if err := s.cartRepo.DeleteItems(ctx, tx, customerID, cartIDs); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
