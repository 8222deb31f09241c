package service

import (
	"errors"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrVariantMismatch   = errors.New("variant does not belong to product")
)

// Cart is the assembled view of a user's cart lines
type Cart struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
	Subtotal   float64          `json:"subtotal"`
}

// GuestCartLine is one line of a client-held guest cart submitted at login
type GuestCartLine struct {
	ProductID uint  `json:"product_id"`
	VariantID *uint `json:"variant_id,omitempty"`
	Quantity  int   `json:"quantity"`
}

type CartService interface {
	GetCart(userID uint) (*Cart, error)
	AddItem(userID, productID uint, variantID *uint, quantity int) (*model.CartItem, error)
	// UpdateQuantity sets an absolute quantity, clamped to [1, stock]
	UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error)
	// AdjustQuantity applies a signed delta. A result below 1 leaves the
	// line untouched, a result above stock clamps to stock.
	AdjustQuantity(userID, itemID uint, delta int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
	Clear(userID uint) error
	// MergeGuestCart folds a guest cart into the user's cart line by line,
	// keeping the larger quantity where both carts hold the same line.
	// Unknown products and variants are skipped, not fatal.
	MergeGuestCart(userID uint, lines []GuestCartLine) (*Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *cartService) GetCart(userID uint) (*Cart, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Items: items}
	for _, item := range items {
		cart.TotalItems += item.Quantity
		cart.Subtotal += item.Product.Price * float64(item.Quantity)
	}
	return cart, nil
}

func (s *cartService) AddItem(userID, productID uint, variantID *uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	ceiling, err := s.stockCeiling(productID, variantID)
	if err != nil {
		return nil, err
	}
	if ceiling < 1 {
		logger.Warn("Add to cart rejected, out of stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, ErrInsufficientStock
	}

	existing, err := s.cartRepo.FindLine(userID, productID, variantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil && err == nil {
		existing.Quantity = clamp(existing.Quantity+quantity, 1, ceiling)
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return s.cartRepo.FindByID(existing.ID)
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  clamp(quantity, 1, ceiling),
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   item.Quantity,
	})
	return s.cartRepo.FindByID(item.ID)
}

func (s *cartService) UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = clamp(quantity, 1, max(item.StockCeiling(), 1))
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) AdjustQuantity(userID, itemID uint, delta int) (*model.CartItem, error) {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	next := item.Quantity + delta
	if next < 1 {
		// Dropping below one is a no-op, removal is its own operation
		return item, nil
	}
	if ceiling := item.StockCeiling(); next > ceiling {
		next = ceiling
	}
	if next == item.Quantity {
		return item, nil
	}

	item.Quantity = next
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	if _, err := s.ownedItem(userID, itemID); err != nil {
		return err
	}
	return s.cartRepo.Delete(itemID)
}

func (s *cartService) Clear(userID uint) error {
	return s.cartRepo.DeleteByUserID(userID)
}

func (s *cartService) MergeGuestCart(userID uint, lines []GuestCartLine) (*Cart, error) {
	logger.Info("Merging guest cart", map[string]interface{}{
		"user_id": userID,
		"lines":   len(lines),
	})

	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}

		ceiling, err := s.stockCeiling(line.ProductID, line.VariantID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrVariantNotFound) || errors.Is(err, ErrVariantMismatch) {
				logger.Warn("Skipping unknown guest cart line", map[string]interface{}{
					"user_id":    userID,
					"product_id": line.ProductID,
				})
				continue
			}
			return nil, err
		}
		if ceiling < 1 {
			continue
		}

		existing, err := s.cartRepo.FindLine(userID, line.ProductID, line.VariantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if existing != nil && err == nil {
			merged := clamp(max(existing.Quantity, line.Quantity), 1, ceiling)
			if merged != existing.Quantity {
				existing.Quantity = merged
				if err := s.cartRepo.Update(existing); err != nil {
					return nil, err
				}
			}
			continue
		}

		item := &model.CartItem{
			UserID:    userID,
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  clamp(line.Quantity, 1, ceiling),
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
	}

	return s.GetCart(userID)
}

// ownedItem loads a cart item and hides other users' items behind not-found
func (s *cartService) ownedItem(userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		logger.Warn("Cart item ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// stockCeiling resolves the available stock for a (product, variant) pair
func (s *cartService) stockCeiling(productID uint, variantID *uint) (int, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}

	if variantID == nil {
		return product.StockQuantity, nil
	}

	variant, err := s.variantRepo.FindByID(*variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrVariantNotFound
		}
		return 0, err
	}
	if variant.ProductID != productID {
		return 0, ErrVariantMismatch
	}
	return variant.StockQuantity, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
