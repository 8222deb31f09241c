package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

type SubscriberService interface {
	// Subscribe registers the email. Re-subscribing an existing address is
	// treated as success, not a conflict.
	Subscribe(email string) (*model.Subscriber, error)
	List() ([]model.Subscriber, error)
	Delete(id uint) error
}

type subscriberService struct {
	subscriberRepo repository.SubscriberRepository
}

func NewSubscriberService(subscriberRepo repository.SubscriberRepository) SubscriberService {
	return &subscriberService{subscriberRepo: subscriberRepo}
}

func (s *subscriberService) Subscribe(email string) (*model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if existing, err := s.subscriberRepo.FindByEmail(email); err == nil {
		logger.Debug("Email already subscribed", map[string]interface{}{
			"subscriber_id": existing.ID,
		})
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subscriber := &model.Subscriber{Email: email}
	if err := s.subscriberRepo.Create(subscriber); err != nil {
		return nil, err
	}

	logger.Info("New subscriber registered", map[string]interface{}{
		"subscriber_id": subscriber.ID,
	})
	return subscriber, nil
}

func (s *subscriberService) List() ([]model.Subscriber, error) {
	return s.subscriberRepo.FindAll()
}

func (s *subscriberService) Delete(id uint) error {
	return s.subscriberRepo.Delete(id)
}
