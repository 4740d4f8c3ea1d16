package service

import (
	"context"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/repository"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type fakeEtsyClient struct {
	listings  map[string]*client.Listing
	err       error
	requested []string
}

func (f *fakeEtsyClient) Configured() bool { return true }

func (f *fakeEtsyClient) FetchListing(ctx context.Context, listingID string) (*client.Listing, error) {
	f.requested = append(f.requested, listingID)
	if f.err != nil {
		return nil, f.err
	}
	listing := *f.listings[listingID]
	return &listing, nil
}

type testServices struct {
	store    *client.Store
	etsy     *fakeEtsyClient
	tokens   TokenService
	hasher   PasswordHasher
	accounts AccountService
	catalog  CatalogService
	customer CustomerService
	reviews  ReviewService
}

func newTestServices(t *testing.T, adminCfg *config.Admin) *testServices {
	t.Helper()

	store, err := client.InitStore(context.Background(), &config.Database{Driver: config.DriverSQLite, Path: ":memory:"}, logger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if adminCfg == nil {
		adminCfg = &config.Admin{Email: "admin@example.com"}
	}

	itemRepo := repository.NewItemRepository(store)
	productRepo := repository.NewManualProductRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	etsy := &fakeEtsyClient{listings: map[string]*client.Listing{}}
	tokens := newTokenService(testJWTConfig(), newTestClock().Now)
	hasher := NewPasswordHasher(4)

	return &testServices{
		store:    store,
		etsy:     etsy,
		tokens:   tokens,
		hasher:   hasher,
		accounts: NewAccountService(adminCfg, tokens, hasher, customerRepo),
		catalog:  NewCatalogService(etsy, itemRepo, productRepo),
		customer: NewCustomerService(
			store,
			customerRepo,
			repository.NewFavoriteRepository(store),
			repository.NewCartRepository(store),
			orderRepo,
			itemRepo,
			productRepo,
		),
		reviews: NewReviewService(orderRepo, repository.NewReviewRepository(store)),
	}
}
