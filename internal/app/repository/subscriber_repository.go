package repository

import (
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

type SubscriberRepository interface {
	Create(subscriber *model.Subscriber) error
	FindByEmail(email string) (*model.Subscriber, error)
	FindAll() ([]model.Subscriber, error)
	Delete(id uint) error
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(subscriber *model.Subscriber) error {
	if err := r.db.Create(subscriber).Error; err != nil {
		logger.Error("Failed to create subscriber in database", err, map[string]interface{}{
			"email": subscriber.Email,
		})
		return err
	}

	logger.Debug("Subscriber created in database", map[string]interface{}{
		"subscriber_id": subscriber.ID,
	})
	return nil
}

func (r *subscriberRepository) FindByEmail(email string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *subscriberRepository) FindAll() ([]model.Subscriber, error) {
	var subscribers []model.Subscriber
	if err := r.db.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		logger.Error("Failed to find subscribers in database", err, nil)
		return nil, err
	}
	return subscribers, nil
}

func (r *subscriberRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Subscriber{}, id).Error; err != nil {
		logger.Error("Failed to delete subscriber from database", err, map[string]interface{}{
			"subscriber_id": id,
		})
		return err
	}
	return nil
}
