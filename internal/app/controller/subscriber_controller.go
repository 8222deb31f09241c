package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/export"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

type SubscriberController struct {
	subscriberService service.SubscriberService
}

func NewSubscriberController(subscriberService service.SubscriberService) *SubscriberController {
	return &SubscriberController{
		subscriberService: subscriberService,
	}
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe registers a newsletter email. Idempotent.
// POST /api/v1/subscribers
func (ctrl *SubscriberController) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Email is required")
		return
	}

	if _, err := ctrl.subscriberService.Subscribe(req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			apperrors.BadRequest(c, apperrors.SubscriberInvalidEmail, "Invalid email address")
			return
		}
		apperrors.InternalError(c, "Failed to subscribe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
}

// List returns all subscribers (admin)
// GET /api/v1/admin/subscribers
func (ctrl *SubscriberController) List(c *gin.Context) {
	subscribers, err := ctrl.subscriberService.List()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch subscribers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}

// Delete removes a subscriber (admin)
// DELETE /api/v1/admin/subscribers/:id
func (ctrl *SubscriberController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.subscriberService.Delete(id); err != nil {
		apperrors.InternalError(c, "Failed to delete subscriber")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscriber deleted"})
}

// Export streams subscribers as an xlsx workbook (admin)
// GET /api/v1/admin/subscribers/export
func (ctrl *SubscriberController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	subscribers, err := ctrl.subscriberService.List()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch subscribers")
		return
	}

	workbook, err := export.SubscribersWorkbook(subscribers)
	if err != nil {
		log.Error("Failed to build subscribers workbook", err, nil)
		apperrors.InternalError(c, "Failed to export subscribers")
		return
	}

	filename := fmt.Sprintf("subscribers-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		log.Error("Failed to stream subscribers workbook", err, nil)
	}
}
