package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	Label      string `json:"label"`
	Recipient  string `json:"recipient" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// List returns the user's addresses, default first
// GET /api/v1/addresses
func (ctrl *AddressController) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	addresses, err := ctrl.addressService.List(userID)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// Create adds an address
// POST /api/v1/addresses
func (ctrl *AddressController) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Recipient, phone and address line are required")
		return
	}

	address, err := ctrl.addressService.Create(userID, service.AddressInput(req))
	if err != nil {
		apperrors.InternalError(c, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// Update edits an address
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.Update(userID, addressID, service.AddressInput(req))
	if err != nil {
		ctrl.respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// Delete removes an address
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.Delete(userID, addressID); err != nil {
		ctrl.respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// SetDefault marks an address as the default
// PUT /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefault(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.SetDefault(userID, addressID); err != nil {
		ctrl.respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
}

func (ctrl *AddressController) respondAddressError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	if errors.Is(err, service.ErrAddressNotFound) {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Address not found")
		return
	}
	log.Error("Address operation failed", err, nil)
	apperrors.InternalError(c, "")
}
