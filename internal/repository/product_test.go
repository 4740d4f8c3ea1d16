package repository

import (
	"context"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanel(name string) *model.ManualProduct {
	width := 30.5
	return &model.ManualProduct{
		Name:           name,
		Description:    "Leaded stained glass",
		CategoryValue:  []any{"panels", "windows"},
		MaterialsValue: "glass, lead came",
		Width:          &width,
		Price:          240,
		Quantity:       2,
	}
}

func TestManualProductCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewManualProductRepository(openTestStore(t))

	id, err := repo.Create(ctx, newPanel("Iris panel"), []model.ImageRef{
		{URL: "https://img/1.jpg"},
		{URL: "https://img/2.mp4", Type: model.MediaVideo},
	})
	require.NoError(t, err)

	product, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Iris panel", product.Name)
	assert.Equal(t, []any{"panels", "windows"}, product.CategoryValue)
	assert.Equal(t, "glass, lead came", product.MaterialsValue)
	require.NotNil(t, product.Width)
	assert.Equal(t, 30.5, *product.Width)
	assert.Nil(t, product.Height)

	require.Len(t, product.Images, 2)
	assert.Equal(t, "https://img/1.jpg", product.Images[0].ImageURL)
	assert.Equal(t, model.MediaImage, product.Images[0].MediaType)
	assert.Equal(t, 0, product.Images[0].DisplayOrder)
	assert.Equal(t, model.MediaVideo, product.Images[1].MediaType)
	assert.Equal(t, 1, product.Images[1].DisplayOrder)

	_, err = repo.Get(ctx, id+1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestManualProductInvalidJSONFallsBack(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	repo := NewManualProductRepository(store)

	id, err := repo.Create(ctx, newPanel("Rose"), nil)
	require.NoError(t, err)

	raw := `["unterminated`
	require.NoError(t, store.DB().Model(&model.ManualProduct{}).Where("id = ?", id).Update("category", raw).Error)

	product, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, raw, product.CategoryValue)
	assert.Empty(t, product.Images)
}

func TestManualProductListOrderAndFeatured(t *testing.T) {
	ctx := context.Background()
	repo := NewManualProductRepository(openTestStore(t))

	featured := newPanel("Featured")
	featured.IsFeatured = true
	_, err := repo.Create(ctx, featured, nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPanel("Plain"), []model.ImageRef{{URL: "https://img/p.jpg"}})
	require.NoError(t, err)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Plain", all[0].Name)
	assert.Len(t, all[0].Images, 1)
	assert.Equal(t, "Featured", all[1].Name)
	assert.NotNil(t, all[1].Images)

	onlyFeatured, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, onlyFeatured, 1)
	assert.Equal(t, "Featured", onlyFeatured[0].Name)
}

func TestManualProductUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewManualProductRepository(openTestStore(t))

	id, err := repo.Create(ctx, newPanel("Before"), []model.ImageRef{{URL: "https://img/a.jpg"}, {URL: "https://img/b.jpg"}})
	require.NoError(t, err)

	t.Run("scalars only keeps images", func(t *testing.T) {
		update := &model.ManualProduct{Name: "After", Description: "New", Price: 99.5, Quantity: 0}
		require.NoError(t, repo.Update(ctx, id, update, nil))

		product, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "After", product.Name)
		assert.Equal(t, 99.5, product.Price)
		assert.Nil(t, product.Width)
		assert.Nil(t, product.CategoryValue)
		assert.Len(t, product.Images, 2)
	})

	t.Run("images are replaced in order", func(t *testing.T) {
		update := &model.ManualProduct{Name: "After", Description: "New", Price: 99.5}
		images := []model.ImageRef{
			{ImageURL: "https://img/b.jpg", MediaType: model.MediaImage},
			{Type: model.MediaVideo},
			{URL: "https://img/c.mp4", Type: model.MediaVideo},
		}
		require.NoError(t, repo.Update(ctx, id, update, images))

		stored, err := repo.ListImages(ctx, id)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, "https://img/b.jpg", stored[0].ImageURL)
		assert.Equal(t, 0, stored[0].DisplayOrder)
		assert.Equal(t, "https://img/c.mp4", stored[1].ImageURL)
		assert.Equal(t, 2, stored[1].DisplayOrder)
	})

	t.Run("empty list clears images", func(t *testing.T) {
		update := &model.ManualProduct{Name: "After", Description: "New", Price: 99.5}
		require.NoError(t, repo.Update(ctx, id, update, []model.ImageRef{}))

		stored, err := repo.ListImages(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("missing product", func(t *testing.T) {
		err := repo.Update(ctx, id+50, &model.ManualProduct{Name: "x", Description: "y"}, nil)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestManualProductDeleteRemovesImages(t *testing.T) {
	ctx := context.Background()
	repo := NewManualProductRepository(openTestStore(t))

	id, err := repo.Create(ctx, newPanel("Doomed"), []model.ImageRef{{URL: "https://img/1.jpg"}, {URL: "https://img/2.jpg"}})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	images, err := repo.ListImages(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, images)

	deleted, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
