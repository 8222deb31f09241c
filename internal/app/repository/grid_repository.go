package repository

import (
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

type GridRepository interface {
	FindAll() ([]model.GridItem, error)
	FindByID(id uint) (*model.GridItem, error)
	Create(item *model.GridItem) error
	Update(item *model.GridItem) error
	Delete(id uint) error
}

type gridRepository struct {
	db *gorm.DB
}

func NewGridRepository(db *gorm.DB) GridRepository {
	return &gridRepository{db: db}
}

func (r *gridRepository) FindAll() ([]model.GridItem, error) {
	var items []model.GridItem
	if err := r.db.Order("position").Find(&items).Error; err != nil {
		logger.Error("Failed to find grid items in database", err, nil)
		return nil, err
	}
	return items, nil
}

func (r *gridRepository) FindByID(id uint) (*model.GridItem, error) {
	var item model.GridItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gridRepository) Create(item *model.GridItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create grid item in database", err, map[string]interface{}{
			"position": item.Position,
		})
		return err
	}
	return nil
}

func (r *gridRepository) Update(item *model.GridItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update grid item in database", err, map[string]interface{}{
			"grid_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *gridRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.GridItem{}, id).Error; err != nil {
		logger.Error("Failed to delete grid item from database", err, map[string]interface{}{
			"grid_item_id": id,
		})
		return err
	}
	return nil
}
