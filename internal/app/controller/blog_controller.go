package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

type BlogController struct {
	blogService service.BlogService
}

func NewBlogController(blogService service.BlogService) *BlogController {
	return &BlogController{
		blogService: blogService,
	}
}

type BlogRequest struct {
	Title      string `json:"title" binding:"required"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
	Published  bool   `json:"published"`
}

// List returns published posts for the storefront
// GET /api/v1/blogs
func (ctrl *BlogController) List(c *gin.Context) {
	blogs, err := ctrl.blogService.List(false)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

// GetBySlug returns one post
// GET /api/v1/blogs/:slug
func (ctrl *BlogController) GetBySlug(c *gin.Context) {
	blog, err := ctrl.blogService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Post not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

// ListAll returns every post including drafts (admin)
// GET /api/v1/admin/blogs
func (ctrl *BlogController) ListAll(c *gin.Context) {
	blogs, err := ctrl.blogService.List(true)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

// Create creates a post (admin)
// POST /api/v1/admin/blogs
func (ctrl *BlogController) Create(c *gin.Context) {
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Title is required")
		return
	}

	blog, err := ctrl.blogService.Create(service.BlogInput(req))
	if err != nil {
		ctrl.respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blog": blog})
}

// Update edits a post (admin)
// PUT /api/v1/admin/blogs/:id
func (ctrl *BlogController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid post data")
		return
	}

	blog, err := ctrl.blogService.Update(id, service.BlogInput(req))
	if err != nil {
		ctrl.respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

// Delete removes a post (admin)
// DELETE /api/v1/admin/blogs/:id
func (ctrl *BlogController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.blogService.Delete(id); err != nil {
		ctrl.respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (ctrl *BlogController) respondBlogError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrBlogNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Post not found")
	case errors.Is(err, service.ErrSlugTaken):
		apperrors.Conflict(c, apperrors.CatalogSlugExists, "Slug is already in use")
	default:
		log.Error("Blog operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "blog")
	}
}
