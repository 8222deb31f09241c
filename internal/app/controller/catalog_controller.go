package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

type CatalogRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// ListCollections returns all collections
// GET /api/v1/collections
func (ctrl *CatalogController) ListCollections(c *gin.Context) {
	collections, err := ctrl.catalogService.ListCollections()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// GetCollection returns one collection by slug
// GET /api/v1/collections/:slug
func (ctrl *CatalogController) GetCollection(c *gin.Context) {
	collection, err := ctrl.catalogService.GetCollectionBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCollectionNotFound, "Collection not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

// CreateCollection creates a collection (admin)
// POST /api/v1/admin/collections
func (ctrl *CatalogController) CreateCollection(c *gin.Context) {
	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid collection data")
		return
	}

	collection, err := ctrl.catalogService.CreateCollection(c.Request.Context(), service.CatalogInput(req))
	if err != nil {
		ctrl.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"collection": collection})
}

// UpdateCollection updates a collection (admin)
// PUT /api/v1/admin/collections/:id
func (ctrl *CatalogController) UpdateCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid collection data")
		return
	}

	collection, err := ctrl.catalogService.UpdateCollection(c.Request.Context(), id, service.CatalogInput(req))
	if err != nil {
		ctrl.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

// DeleteCollection removes a collection, detaching its products (admin)
// DELETE /api/v1/admin/collections/:id
func (ctrl *CatalogController) DeleteCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteCollection(c.Request.Context(), id); err != nil {
		ctrl.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

// ListCategories returns all categories
// GET /api/v1/categories
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	categories, err := ctrl.catalogService.ListCategories()
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns one category by slug
// GET /api/v1/categories/:slug
func (ctrl *CatalogController) GetCategory(c *gin.Context) {
	category, err := ctrl.catalogService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory creates a category (admin)
// POST /api/v1/admin/categories
func (ctrl *CatalogController) CreateCategory(c *gin.Context) {
	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.catalogService.CreateCategory(c.Request.Context(), service.CatalogInput(req))
	if err != nil {
		ctrl.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory updates a category (admin)
// PUT /api/v1/admin/categories/:id
func (ctrl *CatalogController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.catalogService.UpdateCategory(c.Request.Context(), id, service.CatalogInput(req))
	if err != nil {
		ctrl.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category, detaching its products (admin)
// DELETE /api/v1/admin/categories/:id
func (ctrl *CatalogController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		ctrl.respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (ctrl *CatalogController) respondCatalogError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		apperrors.NotFound(c, apperrors.CatalogCollectionNotFound, "Collection not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrSlugTaken):
		apperrors.Conflict(c, apperrors.CatalogSlugExists, "Slug is already in use")
	default:
		log.Error("Catalog operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "catalog")
	}
}
