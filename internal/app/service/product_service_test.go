package service

import (
	"context"
	"testing"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	return NewProductService(testDB, productRepo, variantRepo, nil), testDB
}

func TestProductService_Create_DerivesSlugFromTitle(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	product, err := productService.Create(context.Background(), ProductInput{
		Title: "Wool Overcoat",
		Price: 320,
	})
	require.NoError(t, err)
	assert.Equal(t, "wool-overcoat", product.Slug)
}

func TestProductService_Create_DerivedSlugGetsSuffixOnCollision(t *testing.T) {
	productService, _ := setupProductServiceTest(t)
	ctx := context.Background()

	_, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Price: 320})
	require.NoError(t, err)

	second, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Price: 340})
	require.NoError(t, err)
	assert.Equal(t, "wool-overcoat-2", second.Slug)

	third, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Price: 360})
	require.NoError(t, err)
	assert.Equal(t, "wool-overcoat-3", third.Slug)
}

func TestProductService_Create_ExplicitSlugCollisionFails(t *testing.T) {
	productService, _ := setupProductServiceTest(t)
	ctx := context.Background()

	_, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Slug: "overcoat", Price: 320})
	require.NoError(t, err)

	_, err = productService.Create(ctx, ProductInput{Title: "Another Coat", Slug: "overcoat", Price: 280})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestProductService_Create_RejectsBadInput(t *testing.T) {
	productService, _ := setupProductServiceTest(t)
	ctx := context.Background()

	_, err := productService.Create(ctx, ProductInput{Title: "Free Coat", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = productService.Create(ctx, ProductInput{Title: "Coat", Price: 10, StockQuantity: -1})
	assert.ErrorIs(t, err, ErrInvalidStock)
}

func TestProductService_Update_KeepsSlugWhenUnchanged(t *testing.T) {
	productService, _ := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Price: 320})
	require.NoError(t, err)

	updated, err := productService.Update(ctx, product.ID, ProductInput{
		Title: "Wool Overcoat (restocked)",
		Slug:  product.Slug,
		Price: 340,
	})
	require.NoError(t, err)
	assert.Equal(t, "wool-overcoat", updated.Slug)
	assert.Equal(t, 340.0, updated.Price)
}

func TestProductService_Update_DirectStockOnlyForVariantless(t *testing.T) {
	productService, _ := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := productService.Create(ctx, ProductInput{Title: "Card Holder", Price: 45, StockQuantity: 10})
	require.NoError(t, err)

	updated, err := productService.Update(ctx, product.ID, ProductInput{
		Title: "Card Holder", Price: 45, StockQuantity: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.StockQuantity)

	// Once variants exist the aggregate ignores direct edits
	_, err = productService.AddVariant(ctx, product.ID, VariantInput{Size: "OS", SKU: "CH-OS", StockQuantity: 7})
	require.NoError(t, err)

	updated, err = productService.Update(ctx, product.ID, ProductInput{
		Title: "Card Holder", Price: 45, StockQuantity: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.StockQuantity)
}

func TestProductService_Variants_SyncAggregate(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Price: 320})
	require.NoError(t, err)

	v1, err := productService.AddVariant(ctx, product.ID, VariantInput{Size: "S", SKU: "WOC-S", StockQuantity: 3})
	require.NoError(t, err)
	v2, err := productService.AddVariant(ctx, product.ID, VariantInput{Size: "M", SKU: "WOC-M", StockQuantity: 5})
	require.NoError(t, err)

	var fresh model.Product
	testDB.First(&fresh, product.ID)
	assert.Equal(t, 8, fresh.StockQuantity)

	_, err = productService.UpdateVariant(ctx, product.ID, v1.ID, VariantInput{Size: "S", SKU: "WOC-S", StockQuantity: 10})
	require.NoError(t, err)

	testDB.First(&fresh, product.ID)
	assert.Equal(t, 15, fresh.StockQuantity)

	require.NoError(t, productService.DeleteVariant(ctx, product.ID, v2.ID))

	testDB.First(&fresh, product.ID)
	assert.Equal(t, 10, fresh.StockQuantity)
}

func TestProductService_Variants_WrongProductRejected(t *testing.T) {
	productService, _ := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Price: 320})
	require.NoError(t, err)
	other, err := productService.Create(ctx, ProductInput{Title: "Merino Crewneck", Price: 95})
	require.NoError(t, err)

	variant, err := productService.AddVariant(ctx, product.ID, VariantInput{Size: "S", SKU: "WOC-S", StockQuantity: 3})
	require.NoError(t, err)

	_, err = productService.UpdateVariant(ctx, other.ID, variant.ID, VariantInput{Size: "S", SKU: "WOC-S", StockQuantity: 1})
	assert.ErrorIs(t, err, ErrVariantNotFound)

	err = productService.DeleteVariant(ctx, other.ID, variant.ID)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestProductService_Delete(t *testing.T) {
	productService, _ := setupProductServiceTest(t)
	ctx := context.Background()

	product, err := productService.Create(ctx, ProductInput{Title: "Wool Overcoat", Price: 320})
	require.NoError(t, err)

	require.NoError(t, productService.Delete(ctx, product.ID))

	_, err = productService.GetByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = productService.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_List_Filters(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	ctx := context.Background()

	collection := &model.Collection{Title: "Autumn Edit", Slug: "autumn-edit"}
	testDB.Create(collection)

	_, err := productService.Create(ctx, ProductInput{
		Title: "Wool Overcoat", Price: 320, Featured: true, CollectionID: &collection.ID,
	})
	require.NoError(t, err)
	_, err = productService.Create(ctx, ProductInput{Title: "Merino Crewneck", Price: 95, Trending: true})
	require.NoError(t, err)

	products, total, err := productService.List(repository.ProductFilter{Featured: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "wool-overcoat", products[0].Slug)

	products, total, err = productService.List(repository.ProductFilter{CollectionSlug: "autumn-edit"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	products, total, err = productService.List(repository.ProductFilter{Search: "merino"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "merino-crewneck", products[0].Slug)
}
