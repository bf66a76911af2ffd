package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.ProductPriceTier{}))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, storeID uuid.UUID, tiers ...models.ProductPriceTier) *models.Product {
	t.Helper()
	product := &models.Product{
		StoreID:         storeID,
		SKU:             fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:            "Camiseta Basica",
		RetailPrice:     decimal.RequireFromString("49.90"),
		WholesalePrice:  decimal.NewNullDecimal(decimal.RequireFromString("39.90")),
		MinWholesaleQty: 6,
		IsActive:        true,
		PriceTiers:      tiers,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestRepositoryGetProductScopesByStore(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	storeID := uuid.New()

	product := mustCreateProduct(t, conn, storeID,
		models.ProductPriceTier{StoreID: storeID, Name: "Dozen", MinQuantity: 12, UnitPrice: decimal.RequireFromString("35"), IsActive: true},
		models.ProductPriceTier{StoreID: storeID, Name: "Half", MinQuantity: 6, UnitPrice: decimal.RequireFromString("38"), IsActive: true},
	)

	got, err := repo.GetProduct(ctx, storeID, product.ID)
	require.NoError(t, err)
	require.Equal(t, product.SKU, got.SKU)
	require.True(t, got.RetailPrice.Equal(decimal.RequireFromString("49.9")))
	require.True(t, got.WholesalePrice.Valid)
	require.Len(t, got.PriceTiers, 2)
	require.Equal(t, "Half", got.PriceTiers[0].Name, "tiers load by ascending threshold")

	_, err = repo.GetProduct(ctx, uuid.New(), product.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound), "other tenants must not see the product")
}

func TestRepositoryListProducts(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	storeID := uuid.New()

	first := mustCreateProduct(t, conn, storeID)
	second := mustCreateProduct(t, conn, storeID)
	foreign := mustCreateProduct(t, conn, uuid.New())

	products, err := repo.ListProducts(ctx, storeID, []uuid.UUID{first.ID, second.ID, foreign.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, products, 2)

	empty, err := repo.ListProducts(ctx, storeID, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}
