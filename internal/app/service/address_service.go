package service

import (
	"errors"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressInput struct {
	Label      string
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
	IsDefault  bool
}

type AddressService interface {
	List(userID uint) ([]model.Address, error)
	Create(userID uint, input AddressInput) (*model.Address, error)
	Update(userID, addressID uint, input AddressInput) (*model.Address, error)
	Delete(userID, addressID uint) error
	SetDefault(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) List(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

func (s *addressService) Create(userID uint, input AddressInput) (*model.Address, error) {
	count, err := s.addressRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		UserID:     userID,
		Label:      input.Label,
		Recipient:  input.Recipient,
		Phone:      input.Phone,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		PostalCode: input.PostalCode,
		Country:    input.Country,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}

	// The first address always becomes the default
	if input.IsDefault || count == 0 {
		if err := s.addressRepo.SetDefault(userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	logger.Info("Address created", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
		"is_default": address.IsDefault,
	})
	return address, nil
}

func (s *addressService) Update(userID, addressID uint, input AddressInput) (*model.Address, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Label = input.Label
	address.Recipient = input.Recipient
	address.Phone = input.Phone
	address.Line1 = input.Line1
	address.Line2 = input.Line2
	address.City = input.City
	address.PostalCode = input.PostalCode
	address.Country = input.Country

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(userID, addressID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}
	return address, nil
}

func (s *addressService) Delete(userID, addressID uint) error {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return err
	}
	if err := s.addressRepo.Delete(addressID); err != nil {
		return err
	}

	// Deleting the default promotes the most recent survivor
	if address.IsDefault {
		remaining, err := s.addressRepo.FindByUserID(userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.addressRepo.SetDefault(userID, remaining[0].ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *addressService) SetDefault(userID, addressID uint) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.SetDefault(userID, addressID)
}

func (s *addressService) ownedAddress(userID, addressID uint) (*model.Address, error) {
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
	return address, nil
}
