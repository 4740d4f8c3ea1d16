package repository

import (
	"context"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(openTestStore(t))

	id, err := repo.Create(ctx, &model.Customer{Email: "  Ada@Example.COM ", PasswordHash: "hash", FirstName: "Ada"})
	require.NoError(t, err)

	byEmail, err := repo.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "ada@example.com", byEmail.Email)
	assert.Nil(t, byEmail.LastLoginAt)

	byID, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.FirstName)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, apperror.IsNotFound(err))
}

func TestCustomerDuplicateEmailConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(openTestStore(t))

	_, err := repo.Create(ctx, &model.Customer{Email: "a@b.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.Customer{Email: "A@B.com", PasswordHash: "y"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCustomerTouchLoginAndProfile(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	repo := NewCustomerRepository(store)
	id := createTestCustomer(t, store, "a@b.com")

	require.NoError(t, repo.TouchLogin(ctx, id))
	require.NoError(t, repo.UpdateProfile(ctx, id, "Grace", "Hopper", "555-0100"))

	customer, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, customer.LastLoginAt)
	assert.Equal(t, "Grace", customer.FirstName)
	assert.Equal(t, "555-0100", customer.Phone)

	assert.True(t, apperror.IsNotFound(repo.TouchLogin(ctx, id+1)))
}

func TestCustomerAddresses(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	repo := NewCustomerRepository(store)
	id := createTestCustomer(t, store, "a@b.com")
	other := createTestCustomer(t, store, "c@d.com")

	home := &model.CustomerAddress{CustomerID: id, Label: "Home", Line1: "1 Main St", IsDefault: true}
	require.NoError(t, repo.AddAddress(ctx, home))
	assert.NotZero(t, home.ID)
	require.NoError(t, repo.AddAddress(ctx, &model.CustomerAddress{CustomerID: id, Label: "Studio", Line1: "2 Kiln Rd"}))
	require.NoError(t, repo.AddAddress(ctx, &model.CustomerAddress{CustomerID: other, Label: "Elsewhere", Line1: "3 Other Ave"}))

	addresses, err := repo.ListAddresses(ctx, id)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, home.ID, addresses[0].ID)
	assert.Equal(t, "Studio", addresses[1].Label)

	require.NoError(t, repo.AddAddress(ctx, &model.CustomerAddress{CustomerID: id, Label: "New home", Line1: "4 Main St", IsDefault: true}))

	addresses, err = repo.ListAddresses(ctx, id)
	require.NoError(t, err)
	require.Len(t, addresses, 3)
	assert.Equal(t, "New home", addresses[0].Label)
	assert.True(t, addresses[0].IsDefault)
	for _, address := range addresses[1:] {
		assert.False(t, address.IsDefault)
	}
}

func TestCustomerDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	repo := NewCustomerRepository(store)
	id := createTestCustomer(t, store, "a@b.com")

	require.NoError(t, repo.AddAddress(ctx, &model.CustomerAddress{CustomerID: id, Line1: "1 Main St"}))
	require.NoError(t, NewFavoriteRepository(store).Add(ctx, id, model.ProductTypeManual, "1"))
	require.NoError(t, NewCartRepository(store).Upsert(ctx, id, model.ProductTypeManual, "1", 1))

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int64
	for _, table := range []any{&model.CustomerAddress{}, &model.Favorite{}, &model.CartItem{}} {
		require.NoError(t, store.DB().Model(table).Where("customer_id = ?", id).Count(&count).Error)
		assert.Zero(t, count)
	}
}
