package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Title         string   `json:"title" binding:"required"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	StockQuantity int      `json:"stock_quantity"`
	ImageURL      string   `json:"image_url"`
	MediaURLs     []string `json:"media_urls"`
	CollectionID  *uint    `json:"collection_id"`
	CategoryID    *uint    `json:"category_id"`
	Featured      bool     `json:"featured"`
	Trending      bool     `json:"trending"`
}

type VariantRequest struct {
	Size          string `json:"size"`
	Color         string `json:"color"`
	SKU           string `json:"sku"`
	StockQuantity int    `json:"stock_quantity"`
}

// List returns products with filters and pagination
// GET /api/v1/products?collection=&category=&featured=&trending=&search=&limit=&offset=
func (ctrl *ProductController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		CollectionSlug: c.Query("collection"),
		CategorySlug:   c.Query("category"),
		Featured:       c.Query("featured") == "true",
		Trending:       c.Query("trending") == "true",
		Search:         c.Query("search"),
		Limit:          queryInt(c, "limit", 20),
		Offset:         queryInt(c, "offset", 0),
	}

	products, total, err := ctrl.productService.List(filter)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// GetBySlug returns one product with variants
// GET /api/v1/products/:slug
func (ctrl *ProductController) GetBySlug(c *gin.Context) {
	product, err := ctrl.productService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create creates a product (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), productInput(req))
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// Update updates a product (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, productInput(req))
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete removes a product (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// AddVariant adds a variant to a product (admin)
// POST /api/v1/admin/products/:id/variants
func (ctrl *ProductController) AddVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant data")
		return
	}

	variant, err := ctrl.productService.AddVariant(c.Request.Context(), productID, service.VariantInput(req))
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"variant": variant})
}

// UpdateVariant updates a variant (admin)
// PUT /api/v1/admin/products/:id/variants/:variantId
func (ctrl *ProductController) UpdateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variantId")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant data")
		return
	}

	variant, err := ctrl.productService.UpdateVariant(c.Request.Context(), productID, variantID, service.VariantInput(req))
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// DeleteVariant removes a variant (admin)
// DELETE /api/v1/admin/products/:id/variants/:variantId
func (ctrl *ProductController) DeleteVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variantId")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteVariant(c.Request.Context(), productID, variantID); err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
}

func (ctrl *ProductController) respondProductError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "Variant not found")
	case errors.Is(err, service.ErrSlugTaken):
		apperrors.Conflict(c, apperrors.CatalogSlugExists, "Slug is already in use")
	case errors.Is(err, service.ErrSKUTaken):
		apperrors.Conflict(c, apperrors.CatalogSKUExists, "SKU is already in use")
	case errors.Is(err, service.ErrInvalidPrice), errors.Is(err, service.ErrInvalidStock):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	default:
		log.Error("Product operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
	}
}

func productInput(req ProductRequest) service.ProductInput {
	return service.ProductInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		MediaURLs:     req.MediaURLs,
		CollectionID:  req.CollectionID,
		CategoryID:    req.CategoryID,
		Featured:      req.Featured,
		Trending:      req.Trending,
	}
}

// queryInt reads an integer query parameter with a default
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
