package service

import (
	"encoding/json"
	"testing"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type capturedEvent struct {
	name    string
	payload map[string]interface{}
}

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	events []capturedEvent
}

func (p *recordingPublisher) Publish(event string, payload map[string]interface{}) {
	p.events = append(p.events, capturedEvent{name: event, payload: payload})
}

func setupOrderServiceTest(t *testing.T) (OrderService, *recordingPublisher, *model.User, *model.Address, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	events := &recordingPublisher{}
	orderService := NewOrderService(testDB, orderRepo, cartRepo, addressRepo, events)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "Buyer",
	}
	testDB.Create(user)

	address := &model.Address{
		UserID:    user.ID,
		Recipient: "Buyer",
		Phone:     "010-0000-0000",
		Line1:     "1 Test Street",
		IsDefault: true,
	}
	testDB.Create(address)

	return orderService, events, user, address, testDB
}

func createProductWithVariant(t *testing.T, testDB *gorm.DB, slug string, price float64, stock, variantStock int) (*model.Product, *model.ProductVariant) {
	t.Helper()

	product := &model.Product{
		Title:         slug,
		Slug:          slug,
		Price:         price,
		StockQuantity: stock,
	}
	require.NoError(t, testDB.Create(product).Error)

	variant := &model.ProductVariant{
		ProductID:     product.ID,
		Size:          "M",
		SKU:           slug + "-M",
		StockQuantity: variantStock,
	}
	require.NoError(t, testDB.Create(variant).Error)

	return product, variant
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	orderService, events, user, address, testDB := setupOrderServiceTest(t)

	product, variant := createProductWithVariant(t, testDB, "overcoat", 320, 10, 10)

	testDB.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		VariantID: &variant.ID,
		Quantity:  2,
	})

	order, err := orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.Equal(t, 640.0, order.TotalAmount)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 320.0, order.OrderItems[0].Price)

	// Address snapshot captured at placement
	var snap model.Address
	require.NoError(t, json.Unmarshal([]byte(order.ShippingAddress), &snap))
	assert.Equal(t, "1 Test Street", snap.Line1)

	// Line snapshot carries variant details
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(order.OrderItems[0].Snapshot), &line))
	assert.Equal(t, "M", line["size"])

	// Both stock counters decremented
	var freshProduct model.Product
	testDB.First(&freshProduct, product.ID)
	assert.Equal(t, 8, freshProduct.StockQuantity)

	var freshVariant model.ProductVariant
	testDB.First(&freshVariant, variant.ID)
	assert.Equal(t, 8, freshVariant.StockQuantity)

	// Cart emptied
	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Admin feed notified
	require.NotEmpty(t, events.events)
	assert.Equal(t, "order_placed", events.events[0].name)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	orderService, _, user, address, _ := setupOrderServiceTest(t)

	_, err := orderService.PlaceOrder(user.ID, address.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_PlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	orderService, _, user, address, testDB := setupOrderServiceTest(t)

	inStock := &model.Product{Title: "Scarf", Slug: "scarf", Price: 40, StockQuantity: 10}
	testDB.Create(inStock)
	scarce := &model.Product{Title: "Beanie", Slug: "beanie", Price: 30, StockQuantity: 1}
	testDB.Create(scarce)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: inStock.ID, Quantity: 2})
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: scarce.ID, Quantity: 5})

	_, err := orderService.PlaceOrder(user.ID, address.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, scarce.ID, oos.ProductID)
	assert.Equal(t, 1, oos.Available)

	// Nothing committed: stock untouched, cart intact, no order rows
	var fresh model.Product
	testDB.First(&fresh, inStock.ID)
	assert.Equal(t, 10, fresh.StockQuantity)

	var cartCount int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Equal(t, int64(2), cartCount)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestOrderService_PlaceOrder_RejectsForeignAddress(t *testing.T) {
	orderService, _, user, _, testDB := setupOrderServiceTest(t)

	stranger := &model.User{Email: "stranger@example.com", PasswordHash: "hash", Name: "Stranger"}
	testDB.Create(stranger)
	foreign := &model.Address{UserID: stranger.ID, Recipient: "Stranger", Phone: "010", Line1: "Elsewhere"}
	testDB.Create(foreign)

	product := &model.Product{Title: "Scarf", Slug: "scarf", Price: 40, StockQuantity: 5}
	testDB.Create(product)
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	_, err := orderService.PlaceOrder(user.ID, foreign.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestOrderService_GetOrder_OwnershipEnforced(t *testing.T) {
	orderService, _, user, address, testDB := setupOrderServiceTest(t)

	product := &model.Product{Title: "Scarf", Slug: "scarf", Price: 40, StockQuantity: 5}
	testDB.Create(product)
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	order, err := orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	stranger := &model.User{Email: "stranger@example.com", PasswordHash: "hash", Name: "Stranger"}
	testDB.Create(stranger)

	_, err = orderService.GetOrder(stranger.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	found, err := orderService.GetOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderService, _, user, address, testDB := setupOrderServiceTest(t)

	product := &model.Product{Title: "Scarf", Slug: "scarf", Price: 40, StockQuantity: 5}
	testDB.Create(product)
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	order, err := orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	updated, err := orderService.UpdateStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	_, err = orderService.UpdateStatus(order.ID, model.OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_ListAll_StatusFilter(t *testing.T) {
	orderService, _, user, address, testDB := setupOrderServiceTest(t)

	product := &model.Product{Title: "Scarf", Slug: "scarf", Price: 40, StockQuantity: 5}
	testDB.Create(product)
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	order, err := orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)
	_, err = orderService.UpdateStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)

	shipped, total, err := orderService.ListAll(model.OrderStatusShipped, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, shipped, 1)

	_, total, err = orderService.ListAll(model.OrderStatusProcessing, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, _, err = orderService.ListAll(model.OrderStatus("teleported"), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_PlaceOrder_EmitsLowStockEvent(t *testing.T) {
	orderService, events, user, address, testDB := setupOrderServiceTest(t)

	product := &model.Product{Title: "Scarf", Slug: "scarf", Price: 40, StockQuantity: 6}
	testDB.Create(product)
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	_, err := orderService.PlaceOrder(user.ID, address.ID)
	require.NoError(t, err)

	var names []string
	for _, e := range events.events {
		names = append(names, e.name)
	}
	assert.Contains(t, names, "stock_low")
}
