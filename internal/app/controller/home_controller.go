package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	"github.com/shlee-dev/veloura-backend/internal/cache"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

const homeSectionLimit = 8

// HomeController assembles the single payload the storefront home page
// renders from: hero content, showcase grid, featured and trending
// products, and collections. The result is cached in Redis.
type HomeController struct {
	productService service.ProductService
	catalogService service.CatalogService
	contentService service.ContentService
	homeCache      *cache.HomeCache
}

func NewHomeController(
	productService service.ProductService,
	catalogService service.CatalogService,
	contentService service.ContentService,
	homeCache *cache.HomeCache,
) *HomeController {
	return &HomeController{
		productService: productService,
		catalogService: catalogService,
		contentService: contentService,
		homeCache:      homeCache,
	}
}

// GetHome returns the home page payload, cache-aside
// GET /api/v1/home
func (ctrl *HomeController) GetHome(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	ctx := c.Request.Context()

	if ctrl.homeCache != nil {
		if cached, err := ctrl.homeCache.GetHome(ctx); err == nil && cached != "" {
			log.Debug("Home payload served from cache", nil)
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	featured, _, err := ctrl.productService.List(repository.ProductFilter{
		Featured: true,
		Limit:    homeSectionLimit,
	})
	if err != nil {
		log.Error("Failed to load featured products", err, nil)
		apperrors.InternalError(c, "Failed to load home")
		return
	}

	trending, _, err := ctrl.productService.List(repository.ProductFilter{
		Trending: true,
		Limit:    homeSectionLimit,
	})
	if err != nil {
		log.Error("Failed to load trending products", err, nil)
		apperrors.InternalError(c, "Failed to load home")
		return
	}

	collections, err := ctrl.catalogService.ListCollections()
	if err != nil {
		log.Error("Failed to load collections", err, nil)
		apperrors.InternalError(c, "Failed to load home")
		return
	}

	gridItems, err := ctrl.contentService.ListGridItems()
	if err != nil {
		log.Error("Failed to load grid items", err, nil)
		apperrors.InternalError(c, "Failed to load home")
		return
	}

	blocks, err := ctrl.contentService.ListBlocks()
	if err != nil {
		log.Error("Failed to load content blocks", err, nil)
		apperrors.InternalError(c, "Failed to load home")
		return
	}

	payload := gin.H{
		"featured":    featured,
		"trending":    trending,
		"collections": collections,
		"grid":        gridItems,
		"content":     blocks,
	}

	if ctrl.homeCache != nil {
		if data, err := json.Marshal(payload); err == nil {
			if err := ctrl.homeCache.SetHome(ctx, string(data)); err != nil {
				log.Warn("Failed to cache home payload", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	c.JSON(http.StatusOK, payload)
}
