package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrAddressNotFound    = errors.New("address not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OutOfStockError reports which line made placement fail
type OutOfStockError struct {
	ProductID uint
	VariantID *uint
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *OutOfStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// lowStockThreshold triggers a live event for the admin feed when an
// aggregate drops to or below it after placement.
const lowStockThreshold = 5

type OrderService interface {
	// PlaceOrder converts the user's cart into an order in one transaction.
	// Stock rows are locked, every line is re-validated against live stock,
	// and any shortfall rolls the whole order back.
	PlaceOrder(userID uint, addressID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrder(userID, orderID uint) (*model.Order, error)
	ListAll(status model.OrderStatus, limit, offset int) ([]model.Order, int64, error)
	UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	events      EventPublisher
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	events EventPublisher,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		events:      events,
	}
}

func (s *orderService) PlaceOrder(userID uint, addressID uint) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressNotFound
	}

	addressSnapshot, err := json.Marshal(address)
	if err != nil {
		return nil, err
	}

	var order *model.Order
	var lowStock []map[string]interface{}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []model.CartItem
		if err := tx.Preload("Product").Preload("Variant").
			Where("user_id = ?", userID).
			Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		order = &model.Order{
			UserID:          userID,
			Status:          model.OrderStatusProcessing,
			ShippingAddress: string(addressSnapshot),
		}

		for _, item := range cartItems {
			// Lock the product row (and variant row when present) so
			// concurrent placements serialize on the same stock.
			var product model.Product
			if err := lockForUpdate(tx).First(&product, item.ProductID).Error; err != nil {
				return err
			}

			available := product.StockQuantity
			var variant *model.ProductVariant
			if item.VariantID != nil {
				variant = &model.ProductVariant{}
				if err := lockForUpdate(tx).First(variant, *item.VariantID).Error; err != nil {
					return err
				}
				available = variant.StockQuantity
			}

			if available < item.Quantity {
				logger.Warn("Order placement failed, insufficient stock", map[string]interface{}{
					"user_id":    userID,
					"product_id": item.ProductID,
					"requested":  item.Quantity,
					"available":  available,
				})
				return &OutOfStockError{
					ProductID: item.ProductID,
					VariantID: item.VariantID,
					Requested: item.Quantity,
					Available: available,
				}
			}

			if variant != nil {
				if err := tx.Model(&model.ProductVariant{}).
					Where("id = ?", variant.ID).
					Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&model.Product{}).
				Where("id = ?", product.ID).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}

			snapshot, err := lineSnapshot(&product, variant)
			if err != nil {
				return err
			}

			order.OrderItems = append(order.OrderItems, model.OrderItem{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				Price:     product.Price,
				Snapshot:  snapshot,
			})
			order.TotalAmount += product.Price * float64(item.Quantity)

			if remaining := product.StockQuantity - item.Quantity; variant == nil && remaining <= lowStockThreshold {
				lowStock = append(lowStock, map[string]interface{}{
					"product_id": product.ID,
					"title":      product.Title,
					"remaining":  remaining,
				})
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// The cart empties only when the order commits
		return tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount,
		"items":    len(order.OrderItems),
	})

	publish(s.events, "order_placed", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount,
	})
	for _, entry := range lowStock {
		publish(s.events, "stock_low", entry)
	}

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListAll(status model.OrderStatus, limit, offset int) ([]model.Order, int64, error) {
	if status != "" && !model.ValidOrderStatus(status) {
		return nil, 0, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindAll(status, limit, offset)
}

func (s *orderService) UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return order, nil
}

// lockForUpdate applies a row lock on dialects that support it. SQLite,
// used by the test suite, serializes writes on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func lineSnapshot(product *model.Product, variant *model.ProductVariant) (string, error) {
	snap := map[string]interface{}{
		"title":     product.Title,
		"slug":      product.Slug,
		"image_url": product.ImageURL,
	}
	if variant != nil {
		snap["size"] = variant.Size
		snap["color"] = variant.Color
		snap["sku"] = variant.SKU
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
