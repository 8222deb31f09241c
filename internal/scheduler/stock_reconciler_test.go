package scheduler

import (
	"testing"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReconcilerTest(t *testing.T) (*StockReconciler, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewStockReconciler(productRepo), testDB
}

func createDriftedProduct(t *testing.T, testDB *gorm.DB, slug string, aggregate int, variantStocks ...int) *model.Product {
	t.Helper()

	product := &model.Product{Title: slug, Slug: slug, Price: 100, StockQuantity: aggregate}
	require.NoError(t, testDB.Create(product).Error)
	for i, stock := range variantStocks {
		variant := &model.ProductVariant{
			ProductID:     product.ID,
			Size:          "OS",
			SKU:           slug + "-" + string(rune('A'+i)),
			StockQuantity: stock,
		}
		require.NoError(t, testDB.Create(variant).Error)
	}
	return product
}

func TestStockReconciler_RepairsDrift(t *testing.T) {
	reconciler, testDB := setupReconcilerTest(t)

	drifted := createDriftedProduct(t, testDB, "drifted", 99, 3, 5)
	healthy := createDriftedProduct(t, testDB, "healthy", 7, 4, 3)

	require.NoError(t, reconciler.Reconcile())

	var fresh model.Product
	testDB.First(&fresh, drifted.ID)
	assert.Equal(t, 8, fresh.StockQuantity)

	testDB.First(&fresh, healthy.ID)
	assert.Equal(t, 7, fresh.StockQuantity)
}

func TestStockReconciler_IgnoresVariantlessProducts(t *testing.T) {
	reconciler, testDB := setupReconcilerTest(t)

	simple := &model.Product{Title: "Card Holder", Slug: "card-holder", Price: 45, StockQuantity: 30}
	require.NoError(t, testDB.Create(simple).Error)

	require.NoError(t, reconciler.Reconcile())

	var fresh model.Product
	testDB.First(&fresh, simple.ID)
	assert.Equal(t, 30, fresh.StockQuantity)
}

func TestVariantSum(t *testing.T) {
	assert.Equal(t, 0, variantSum(nil))
	assert.Equal(t, 9, variantSum([]model.ProductVariant{
		{StockQuantity: 4},
		{StockQuantity: 5},
	}))
}
