package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

type ContentController struct {
	contentService service.ContentService
}

func NewContentController(contentService service.ContentService) *ContentController {
	return &ContentController{
		contentService: contentService,
	}
}

type ContentBlockRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
	Type  string `json:"type" binding:"required"`
	Style string `json:"style"`
}

type GridItemRequest struct {
	Position int    `json:"position"`
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	LinkKind string `json:"link_kind" binding:"required,oneof=collection category"`
	LinkSlug string `json:"link_slug" binding:"required"`
}

// ListBlocks returns every content block
// GET /api/v1/content
func (ctrl *ContentController) ListBlocks(c *gin.Context) {
	blocks, err := ctrl.contentService.ListBlocks()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

// GetBlock returns one block by key
// GET /api/v1/content/:key
func (ctrl *ContentController) GetBlock(c *gin.Context) {
	block, err := ctrl.contentService.GetBlock(c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			apperrors.NotFound(c, apperrors.ContentNotFound, "Content block not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"block": block})
}

// UpsertBlock creates or replaces a content block (admin)
// PUT /api/v1/admin/content
func (ctrl *ContentController) UpsertBlock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContentBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Key and type are required")
		return
	}

	block, err := ctrl.contentService.UpsertBlock(c.Request.Context(), service.ContentInput{
		Key:   req.Key,
		Value: req.Value,
		Type:  model.ContentType(req.Type),
		Style: req.Style,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidContentType):
			apperrors.BadRequest(c, apperrors.ContentInvalidType, "Unknown content type")
		case errors.Is(err, service.ErrInvalidContentShape):
			apperrors.BadRequest(c, apperrors.ContentInvalidShape, err.Error())
		default:
			log.Error("Content upsert failed", err, map[string]interface{}{
				"key": req.Key,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "content")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"block": block})
}

// DeleteBlock removes a content block (admin)
// DELETE /api/v1/admin/content/:key
func (ctrl *ContentController) DeleteBlock(c *gin.Context) {
	if err := ctrl.contentService.DeleteBlock(c.Request.Context(), c.Param("key")); err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			apperrors.NotFound(c, apperrors.ContentNotFound, "Content block not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content block deleted"})
}

// ListGridItems returns the home showcase tiles in order
// GET /api/v1/grid
func (ctrl *ContentController) ListGridItems(c *gin.Context) {
	items, err := ctrl.contentService.ListGridItems()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch grid")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateGridItem adds a showcase tile (admin)
// POST /api/v1/admin/grid
func (ctrl *ContentController) CreateGridItem(c *gin.Context) {
	var req GridItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid grid item data")
		return
	}

	item, err := ctrl.contentService.CreateGridItem(c.Request.Context(), gridInput(req))
	if err != nil {
		apperrors.InternalError(c, "Failed to create grid item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateGridItem edits a showcase tile (admin)
// PUT /api/v1/admin/grid/:id
func (ctrl *ContentController) UpdateGridItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req GridItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid grid item data")
		return
	}

	item, err := ctrl.contentService.UpdateGridItem(c.Request.Context(), id, gridInput(req))
	if err != nil {
		if errors.Is(err, service.ErrGridItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Grid item not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteGridItem removes a showcase tile (admin)
// DELETE /api/v1/admin/grid/:id
func (ctrl *ContentController) DeleteGridItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.contentService.DeleteGridItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrGridItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Grid item not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grid item deleted"})
}

func gridInput(req GridItemRequest) service.GridItemInput {
	return service.GridItemInput{
		Position: req.Position,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkKind: model.GridLinkKind(req.LinkKind),
		LinkSlug: req.LinkSlug,
	}
}
