package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"github.com/shlee-dev/veloura-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrSKUTaken        = errors.New("sku already in use")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidStock    = errors.New("stock quantity cannot be negative")
)

type ProductInput struct {
	Title         string
	Slug          string
	Description   string
	Price         float64
	StockQuantity int
	ImageURL      string
	MediaURLs     []string
	CollectionID  *uint
	CategoryID    *uint
	Featured      bool
	Trending      bool
}

type VariantInput struct {
	Size          string
	Color         string
	SKU           string
	StockQuantity int
}

type ProductService interface {
	List(filter repository.ProductFilter) ([]model.Product, int64, error)
	GetByID(id uint) (*model.Product, error)
	GetBySlug(slug string) (*model.Product, error)
	Create(ctx context.Context, input ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uint) error

	AddVariant(ctx context.Context, productID uint, input VariantInput) (*model.ProductVariant, error)
	UpdateVariant(ctx context.Context, productID, variantID uint, input VariantInput) (*model.ProductVariant, error)
	DeleteVariant(ctx context.Context, productID, variantID uint) error
}

type productService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	cache       HomeInvalidator
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	cache HomeInvalidator,
) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		variantRepo: variantRepo,
		cache:       cache,
	}
}

func (s *productService) List(filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.FindAll(filter)
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("Product not found by slug", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	slug, err := s.resolveSlug(input.Slug, input.Title, 0)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Title:         input.Title,
		Slug:          slug,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		ImageURL:      input.ImageURL,
		CollectionID:  input.CollectionID,
		CategoryID:    input.CategoryID,
		Featured:      input.Featured,
		Trending:      input.Trending,
	}
	if err := product.SetMediaList(input.MediaURLs); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return s.GetByID(product.ID)
}

func (s *productService) Update(ctx context.Context, id uint, input ProductInput) (*model.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	if input.Slug != "" && input.Slug != product.Slug {
		slug, err := s.resolveSlug(input.Slug, input.Title, product.ID)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	product.CollectionID = input.CollectionID
	product.CategoryID = input.CategoryID
	product.Featured = input.Featured
	product.Trending = input.Trending
	if err := product.SetMediaList(input.MediaURLs); err != nil {
		return nil, err
	}

	// The aggregate follows the variant sum whenever variants exist.
	// Direct stock edits only apply to variantless products.
	if len(product.Variants) == 0 {
		product.StockQuantity = input.StockQuantity
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return s.GetByID(product.ID)
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	invalidateHome(ctx, s.cache)

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) AddVariant(ctx context.Context, productID uint, input VariantInput) (*model.ProductVariant, error) {
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}
	if _, err := s.GetByID(productID); err != nil {
		return nil, err
	}

	variant := &model.ProductVariant{
		ProductID:     productID,
		Size:          input.Size,
		Color:         input.Color,
		SKU:           input.SKU,
		StockQuantity: input.StockQuantity,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(variant).Error; err != nil {
			return err
		}
		return syncAggregateStock(tx, productID)
	})
	if err != nil {
		logger.Error("Failed to add product variant", err, map[string]interface{}{
			"product_id": productID,
			"sku":        input.SKU,
		})
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return variant, nil
}

func (s *productService) UpdateVariant(ctx context.Context, productID, variantID uint, input VariantInput) (*model.ProductVariant, error) {
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	if variant.ProductID != productID {
		return nil, ErrVariantNotFound
	}

	variant.Size = input.Size
	variant.Color = input.Color
	variant.SKU = input.SKU
	variant.StockQuantity = input.StockQuantity

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(variant).Error; err != nil {
			return err
		}
		return syncAggregateStock(tx, productID)
	})
	if err != nil {
		logger.Error("Failed to update product variant", err, map[string]interface{}{
			"variant_id": variantID,
		})
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return variant, nil
}

func (s *productService) DeleteVariant(ctx context.Context, productID, variantID uint) error {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	if variant.ProductID != productID {
		return ErrVariantNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ProductVariant{}, variantID).Error; err != nil {
			return err
		}
		return syncAggregateStock(tx, productID)
	})
	if err != nil {
		logger.Error("Failed to delete product variant", err, map[string]interface{}{
			"variant_id": variantID,
		})
		return err
	}

	invalidateHome(ctx, s.cache)
	return nil
}

// resolveSlug picks the explicit slug or derives one from the title, then
// appends a numeric suffix until it is unique. excludeID skips the product
// being updated.
func (s *productService) resolveSlug(explicit, title string, excludeID uint) (string, error) {
	base := explicit
	if base == "" {
		base = util.Slugify(title)
	}
	if base == "" {
		return "", ErrSlugTaken
	}

	slug := base
	for i := 2; ; i++ {
		existing, err := s.productRepo.FindBySlug(slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		if existing.ID == excludeID {
			return slug, nil
		}
		if explicit != "" {
			// An explicit slug collision is an error, not a retry.
			return "", ErrSlugTaken
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// syncAggregateStock recomputes the product aggregate from its variant sum
func syncAggregateStock(tx *gorm.DB, productID uint) error {
	var sum int64
	err := tx.Model(&model.ProductVariant{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(stock_quantity), 0)").
		Scan(&sum).Error
	if err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&model.ProductVariant{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		// Last variant removed. The aggregate keeps its current value so a
		// variantless product stays orderable at the product level.
		return nil
	}

	return tx.Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", sum).Error
}
