package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

func TestProductCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	products := &ProductService{DB: db}

	product, err := products.Create(ctx, ProductInput{
		Name:       "Dog food",
		Category:   models.ProductCategoryFood,
		PriceCents: 1990,
		Stock:      25,
	})
	require.NoError(t, err)
	require.True(t, product.IsActive)
	require.Equal(t, int64(1990), product.PriceCents)

	_, err = products.Create(ctx, ProductInput{Category: models.ProductCategoryFood})
	require.ErrorIs(t, err, ErrValidation)

	_, err = products.Create(ctx, ProductInput{Name: "x", Category: "SNACK"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = products.Create(ctx, ProductInput{Name: "x", Category: models.ProductCategoryToy, PriceCents: -1})
	require.ErrorIs(t, err, ErrValidation)

	_, err = products.Create(ctx, ProductInput{Name: "x", Category: models.ProductCategoryToy, Stock: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestProductListActive_HidesInactive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	products := &ProductService{DB: db}

	visible := createProduct(t, db, "Dog food", 1000, 5)
	hidden := createProduct(t, db, "Old toy", 500, 0)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	items, total, err := products.ListActive(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.Equal(t, visible.ID, items[0].ID)

	_, err = products.GetByID(ctx, hidden.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductUpdate_Partial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	products := &ProductService{DB: db}

	product := createProduct(t, db, "Dog food", 1000, 5)

	newPrice := int64(1500)
	updated, err := products.Update(ctx, product.ID, ProductUpdate{PriceCents: &newPrice})
	require.NoError(t, err)
	require.Equal(t, int64(1500), updated.PriceCents)
	require.Equal(t, "Dog food", updated.Name)
	require.Equal(t, 5, updated.Stock)

	empty := ""
	_, err = products.Update(ctx, product.ID, ProductUpdate{Name: &empty})
	require.ErrorIs(t, err, ErrValidation)

	bad := "SNACK"
	_, err = products.Update(ctx, product.ID, ProductUpdate{Category: &bad})
	require.ErrorIs(t, err, ErrValidation)

	_, err = products.Update(ctx, 9999, ProductUpdate{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductDelete_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	products := &ProductService{DB: db}

	product := createProduct(t, db, "Dog food", 1000, 5)

	require.NoError(t, products.Delete(ctx, product.ID))
	require.NoError(t, products.Delete(ctx, product.ID))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	require.Zero(t, count)
}
