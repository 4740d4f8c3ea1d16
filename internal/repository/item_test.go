package repository

import (
	"context"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestStore(t))

	firstID, err := repo.Upsert(ctx, &model.Item{
		EtsyListingID: "1812320210",
		Title:         "Old title",
		PriceAmount:   "10.00",
		PriceCurrency: "USD",
		ImageURL:      "https://img/old.jpg",
	})
	require.NoError(t, err)

	secondID, err := repo.Upsert(ctx, &model.Item{
		EtsyListingID: "1812320210",
		Title:         "New title",
		PriceAmount:   "12.50",
		PriceCurrency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New title", items[0].Title)
	assert.Equal(t, "12.50", items[0].PriceAmount)
	assert.Empty(t, items[0].ImageURL)
}

func TestItemListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestStore(t))

	for _, id := range []string{"1", "2", "3"} {
		_, err := repo.Upsert(ctx, &model.Item{EtsyListingID: id, Title: "Item " + id})
		require.NoError(t, err)
	}
	_, err := repo.Upsert(ctx, &model.Item{EtsyListingID: "1", Title: "Item 1 again"})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].EtsyListingID)
}

func TestItemGet(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestStore(t))

	id, err := repo.Upsert(ctx, &model.Item{EtsyListingID: "77", Title: "Suncatcher"})
	require.NoError(t, err)

	item, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Suncatcher", item.Title)

	_, err = repo.Get(ctx, id+100)
	assert.True(t, apperror.IsNotFound(err))
}

func TestItemUpsertRequiresListingID(t *testing.T) {
	_, err := NewItemRepository(openTestStore(t)).Upsert(context.Background(), &model.Item{Title: "x"})
	assert.True(t, apperror.IsValidation(err))
}
