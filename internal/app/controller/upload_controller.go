package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
	"github.com/shlee-dev/veloura-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3,
	}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
	Kind        string `json:"kind" binding:"required,oneof=product content blog"`
}

// Presign issues a pre-signed PUT URL for a media upload (admin).
// The client uploads directly to S3 and stores the returned file URL.
// POST /api/v1/admin/uploads/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Filename, content type, size and kind are required")
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, storage.AllowedImageTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image uploads are allowed")
		return
	}
	if err := ctrl.storage.ValidateFileSize(req.Size, storage.MaxUploadSize); err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "File exceeds the 10MB limit")
		return
	}

	folder := storage.UploadFolders[req.Kind]
	result, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"kind": req.Kind,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, result)
}
