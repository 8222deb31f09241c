package service

import (
	"context"
	"errors"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"github.com/shlee-dev/veloura-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

type CatalogInput struct {
	Title       string
	Slug        string
	Description string
	ImageURL    string
}

// CatalogService manages the two grouping axes of the storefront,
// collections and categories.
type CatalogService interface {
	ListCollections() ([]model.Collection, error)
	GetCollectionBySlug(slug string) (*model.Collection, error)
	CreateCollection(ctx context.Context, input CatalogInput) (*model.Collection, error)
	UpdateCollection(ctx context.Context, id uint, input CatalogInput) (*model.Collection, error)
	DeleteCollection(ctx context.Context, id uint) error

	ListCategories() ([]model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, input CatalogInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, input CatalogInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type catalogService struct {
	collectionRepo repository.CollectionRepository
	categoryRepo   repository.CategoryRepository
	cache          HomeInvalidator
}

func NewCatalogService(
	collectionRepo repository.CollectionRepository,
	categoryRepo repository.CategoryRepository,
	cache HomeInvalidator,
) CatalogService {
	return &catalogService{
		collectionRepo: collectionRepo,
		categoryRepo:   categoryRepo,
		cache:          cache,
	}
}

func (s *catalogService) ListCollections() ([]model.Collection, error) {
	return s.collectionRepo.FindAll()
}

func (s *catalogService) GetCollectionBySlug(slug string) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return collection, nil
}

func (s *catalogService) CreateCollection(ctx context.Context, input CatalogInput) (*model.Collection, error) {
	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Title)
	}
	if _, err := s.collectionRepo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	collection := &model.Collection{
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return collection, nil
}

func (s *catalogService) UpdateCollection(ctx context.Context, id uint, input CatalogInput) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	if input.Slug != "" && input.Slug != collection.Slug {
		if existing, err := s.collectionRepo.FindBySlug(input.Slug); err == nil && existing.ID != id {
			return nil, ErrSlugTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		collection.Slug = input.Slug
	}
	collection.Title = input.Title
	collection.Description = input.Description
	collection.ImageURL = input.ImageURL

	if err := s.collectionRepo.Update(collection); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return collection, nil
}

func (s *catalogService) DeleteCollection(ctx context.Context, id uint) error {
	if _, err := s.collectionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollectionNotFound
		}
		return err
	}
	if err := s.collectionRepo.Delete(id); err != nil {
		return err
	}

	invalidateHome(ctx, s.cache)

	logger.Info("Collection deleted, products detached", map[string]interface{}{
		"collection_id": id,
	})
	return nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, input CatalogInput) (*model.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.Title)
	}
	if _, err := s.categoryRepo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uint, input CatalogInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.Slug != "" && input.Slug != category.Slug {
		if existing, err := s.categoryRepo.FindBySlug(input.Slug); err == nil && existing.ID != id {
			return nil, ErrSlugTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		category.Slug = input.Slug
	}
	category.Title = input.Title
	category.Description = input.Description
	category.ImageURL = input.ImageURL

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	invalidateHome(ctx, s.cache)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	invalidateHome(ctx, s.cache)

	logger.Info("Category deleted, products detached", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
