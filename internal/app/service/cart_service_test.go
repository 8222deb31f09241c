package service

import (
	"testing"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *model.ProductVariant, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo, variantRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Title:         "Wool Overcoat",
		Slug:          "wool-overcoat",
		Price:         320,
		StockQuantity: 10,
	}
	testDB.Create(product)

	variant := &model.ProductVariant{
		ProductID:     product.ID,
		Size:          "M",
		Color:         "Camel",
		SKU:           "WOC-M-CAM",
		StockQuantity: 4,
	}
	testDB.Create(variant)

	return cartService, user, product, variant, testDB
}

func TestCartService_GetCart_Empty(t *testing.T) {
	cartService, user, _, _, _ := setupCartServiceTest(t)

	cart, err := cartService.GetCart(user.ID)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Equal(t, 0.0, cart.Subtotal)
}

func TestCartService_AddItem_Success(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	cart, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 960.0, cart.Subtotal)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, nil, 2)
	require.NoError(t, err)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	cart, _ := cartService.GetCart(user.ID)
	assert.Len(t, cart.Items, 1)
}

func TestCartService_AddItem_CapsAtStock(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 25)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
}

func TestCartService_AddItem_VariantCeiling(t *testing.T) {
	cartService, user, product, variant, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, product.ID, &variant.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, user, _, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, 9999, nil, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_VariantMismatch(t *testing.T) {
	cartService, user, _, variant, testDB := setupCartServiceTest(t)

	other := &model.Product{
		Title:         "Merino Crewneck",
		Slug:          "merino-crewneck",
		Price:         95,
		StockQuantity: 5,
	}
	testDB.Create(other)

	_, err := cartService.AddItem(user.ID, other.ID, &variant.ID, 1)
	assert.ErrorIs(t, err, ErrVariantMismatch)
}

func TestCartService_AddItem_OutOfStock(t *testing.T) {
	cartService, user, _, _, testDB := setupCartServiceTest(t)

	soldOut := &model.Product{
		Title:         "Sold Out Scarf",
		Slug:          "sold-out-scarf",
		Price:         40,
		StockQuantity: 0,
	}
	testDB.Create(soldOut)

	_, err := cartService.AddItem(user.ID, soldOut.ID, nil, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_UpdateQuantity_ClampsToStock(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 2)
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(user.ID, item.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)
}

func TestCartService_UpdateQuantity_RejectsZero(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 2)
	require.NoError(t, err)

	_, err = cartService.UpdateQuantity(user.ID, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AdjustQuantity(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 2)
	require.NoError(t, err)

	adjusted, err := cartService.AdjustQuantity(user.ID, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, adjusted.Quantity)

	// Clamp at stock ceiling
	adjusted, err = cartService.AdjustQuantity(user.ID, item.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, adjusted.Quantity)
}

func TestCartService_AdjustQuantity_BelowOneIsNoop(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 1)
	require.NoError(t, err)

	adjusted, err := cartService.AdjustQuantity(user.ID, item.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted.Quantity)

	cart, _ := cartService.GetCart(user.ID)
	assert.Len(t, cart.Items, 1)
}

func TestCartService_RemoveItem_OwnershipEnforced(t *testing.T) {
	cartService, user, product, _, testDB := setupCartServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other User",
	}
	testDB.Create(other)

	item, err := cartService.AddItem(user.ID, product.ID, nil, 1)
	require.NoError(t, err)

	err = cartService.RemoveItem(other.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	// Owner can remove
	err = cartService.RemoveItem(user.ID, item.ID)
	assert.NoError(t, err)
}

func TestCartService_Clear(t *testing.T) {
	cartService, user, product, variant, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, nil, 2)
	require.NoError(t, err)
	_, err = cartService.AddItem(user.ID, product.ID, &variant.ID, 1)
	require.NoError(t, err)

	err = cartService.Clear(user.ID)
	require.NoError(t, err)

	cart, _ := cartService.GetCart(user.ID)
	assert.Len(t, cart.Items, 0)
}

func TestCartService_MergeGuestCart_UnionKeepsLargerQuantity(t *testing.T) {
	cartService, user, product, variant, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem(user.ID, product.ID, nil, 3)
	require.NoError(t, err)

	cart, err := cartService.MergeGuestCart(user.ID, []GuestCartLine{
		{ProductID: product.ID, Quantity: 2},                        // smaller, keeps 3
		{ProductID: product.ID, VariantID: &variant.ID, Quantity: 2}, // new line
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	for _, item := range cart.Items {
		if item.VariantID == nil {
			assert.Equal(t, 3, item.Quantity)
		} else {
			assert.Equal(t, 2, item.Quantity)
		}
	}
}

func TestCartService_MergeGuestCart_SkipsUnknownProducts(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	cart, err := cartService.MergeGuestCart(user.ID, []GuestCartLine{
		{ProductID: 9999, Quantity: 2},
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
}

func TestCartService_MergeGuestCart_CapsAtStock(t *testing.T) {
	cartService, user, product, _, _ := setupCartServiceTest(t)

	cart, err := cartService.MergeGuestCart(user.ID, []GuestCartLine{
		{ProductID: product.ID, Quantity: 99},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 10, cart.Items[0].Quantity)
}
