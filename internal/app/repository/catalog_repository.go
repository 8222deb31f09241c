package repository

import (
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

type CollectionRepository interface {
	Create(collection *model.Collection) error
	FindAll() ([]model.Collection, error)
	FindByID(id uint) (*model.Collection, error)
	FindBySlug(slug string) (*model.Collection, error)
	Update(collection *model.Collection) error
	// Delete removes the collection and detaches its products in one
	// transaction. Products survive with collection_id set to NULL.
	Delete(id uint) error
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(collection *model.Collection) error {
	if err := r.db.Create(collection).Error; err != nil {
		logger.Error("Failed to create collection in database", err, map[string]interface{}{
			"slug": collection.Slug,
		})
		return err
	}

	logger.Debug("Collection created in database", map[string]interface{}{
		"collection_id": collection.ID,
		"slug":          collection.Slug,
	})
	return nil
}

func (r *collectionRepository) FindAll() ([]model.Collection, error) {
	var collections []model.Collection
	if err := r.db.Order("title").Find(&collections).Error; err != nil {
		logger.Error("Failed to find collections in database", err, nil)
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) FindByID(id uint) (*model.Collection, error) {
	var collection model.Collection
	if err := r.db.First(&collection, id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) FindBySlug(slug string) (*model.Collection, error) {
	var collection model.Collection
	if err := r.db.Where("slug = ?", slug).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) Update(collection *model.Collection) error {
	if err := r.db.Save(collection).Error; err != nil {
		logger.Error("Failed to update collection in database", err, map[string]interface{}{
			"collection_id": collection.ID,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("collection_id = ?", id).
			Update("collection_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Collection{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete collection from database", err, map[string]interface{}{
			"collection_id": id,
		})
		return err
	}

	logger.Debug("Collection deleted from database", map[string]interface{}{
		"collection_id": id,
	})
	return nil
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	Update(category *model.Category) error
	// Delete removes the category and detaches its products in one
	// transaction. Products survive with category_id set to NULL.
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("title").Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories in database", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Debug("Category deleted from database", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
