package repository

import (
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository interface {
	FindAll() ([]model.ContentBlock, error)
	FindByKey(key string) (*model.ContentBlock, error)
	// Upsert inserts the block or, when the key already exists, updates
	// its type, value and style in place.
	Upsert(block *model.ContentBlock) error
	Delete(key string) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) FindAll() ([]model.ContentBlock, error) {
	var blocks []model.ContentBlock
	if err := r.db.Order("key").Find(&blocks).Error; err != nil {
		logger.Error("Failed to find content blocks in database", err, nil)
		return nil, err
	}
	return blocks, nil
}

func (r *contentRepository) FindByKey(key string) (*model.ContentBlock, error) {
	var block model.ContentBlock
	if err := r.db.Where("key = ?", key).First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *contentRepository) Upsert(block *model.ContentBlock) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "value", "style", "updated_at"}),
	}).Create(block).Error
	if err != nil {
		logger.Error("Failed to upsert content block in database", err, map[string]interface{}{
			"key": block.Key,
		})
		return err
	}

	logger.Debug("Content block upserted in database", map[string]interface{}{
		"key":  block.Key,
		"type": block.Type,
	})
	return nil
}

func (r *contentRepository) Delete(key string) error {
	if err := r.db.Where("key = ?", key).Delete(&model.ContentBlock{}).Error; err != nil {
		logger.Error("Failed to delete content block from database", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}
