package repository

import (
	"context"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func openTestStore(t *testing.T) *client.Store {
	t.Helper()

	store, err := client.InitStore(context.Background(), &config.Database{Driver: config.DriverSQLite, Path: ":memory:"}, logger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestCustomer(t *testing.T, store *client.Store, email string) uint {
	t.Helper()

	id, err := NewCustomerRepository(store).Create(context.Background(), &model.Customer{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	})
	require.NoError(t, err)
	return id
}
