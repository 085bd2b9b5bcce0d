package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/internal/errors"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
	"github.com/mfalgas/christmas-planner-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3Storage,
	}
}

type PresignAvatarRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignAvatar hands out a short-lived upload URL for an avatar image.
// The client uploads directly to S3 and then saves the file URL via the
// profile endpoint.
// POST /api/v1/uploads/avatar
func (ctrl *UploadController) PresignAvatar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req PresignAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Datos de subida no válidos")
		return
	}

	if !storage.IsAllowedImageType(req.ContentType) {
		errors.BadRequest(c, errors.UploadInvalidFileType, "Solo se permiten imágenes JPEG, PNG, WebP o GIF")
		return
	}

	presigned, err := ctrl.storage.PresignAvatarUpload(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to presign avatar upload", err, map[string]interface{}{
			"user_id":      userID,
			"content_type": req.ContentType,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "No se pudo preparar la subida")
		return
	}

	c.JSON(http.StatusOK, presigned)
}
