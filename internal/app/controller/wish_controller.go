package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/internal/errors"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
)

type WishController struct {
	wishService service.WishService
}

func NewWishController(wishService service.WishService) *WishController {
	return &WishController{
		wishService: wishService,
	}
}

type CreateWishRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	URL         string              `json:"url"`
	Priority    *model.WishPriority `json:"priority"`
}

type UpdateWishRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	URL         *string             `json:"url"`
	Priority    *model.WishPriority `json:"priority"`
}

// ListWishes returns the caller's own list, or another member's list with
// assignment annotations when ?user_id= is given.
// GET /api/v1/wishes
func (ctrl *WishController) ListWishes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	viewerID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	targetParam := c.Query("user_id")
	if targetParam == "" || targetParam == strconv.FormatUint(uint64(viewerID), 10) {
		wishes, err := ctrl.wishService.ListByOwner(viewerID)
		if err != nil {
			log.Error("Failed to list own wishes", err, map[string]interface{}{
				"user_id": viewerID,
			})
			errors.InternalError(c, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"wishes": wishes,
		})
		return
	}

	targetID, err := strconv.ParseUint(targetParam, 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identificador de miembro no válido")
		return
	}

	wishes, err := ctrl.wishService.ViewWishesOf(uint(targetID), viewerID)
	if err != nil {
		log.Error("Failed to list member wishes", err, map[string]interface{}{
			"target_id": targetID,
			"viewer_id": viewerID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishes": wishes,
	})
}

// CreateWish adds a wish to the caller's own list
// POST /api/v1/wishes
func (ctrl *WishController) CreateWish(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Datos del deseo no válidos")
		return
	}

	wish, err := ctrl.wishService.Create(userID, service.CreateWishInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Priority:    req.Priority,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrWishTitleRequired):
			errors.BadRequest(c, errors.WishTitleRequired, "El título es requerido")
		case stderrors.Is(err, service.ErrWishInvalidPriority):
			errors.BadRequest(c, errors.ValidationInvalidRange, "La prioridad debe ser baja, media o alta")
		default:
			log.Error("Failed to create wish", err, map[string]interface{}{
				"user_id": userID,
			})
			errors.ParseAndRespond(c, http.StatusInternalServerError, err, "create wish")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"wish": wish,
	})
}

// UpdateWish edits one of the caller's own wishes
// PUT /api/v1/wishes/:id
func (ctrl *WishController) UpdateWish(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	wishID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identificador de deseo no válido")
		return
	}

	var req UpdateWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Datos del deseo no válidos")
		return
	}

	wish, err := ctrl.wishService.Update(uint(wishID), userID, service.UpdateWishInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Priority:    req.Priority,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrWishNotFound):
			errors.NotFound(c, errors.WishNotFound, "Deseo no encontrado")
		case stderrors.Is(err, service.ErrWishForbidden):
			errors.Forbidden(c, "")
		case stderrors.Is(err, service.ErrWishTitleRequired):
			errors.BadRequest(c, errors.WishTitleRequired, "El título es requerido")
		case stderrors.Is(err, service.ErrWishInvalidPriority):
			errors.BadRequest(c, errors.ValidationInvalidRange, "La prioridad debe ser baja, media o alta")
		default:
			log.Error("Failed to update wish", err, map[string]interface{}{
				"wish_id": wishID,
				"user_id": userID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wish": wish,
	})
}

// DeleteWish removes one of the caller's own wishes, releasing any assignment
// DELETE /api/v1/wishes/:id
func (ctrl *WishController) DeleteWish(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	wishID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identificador de deseo no válido")
		return
	}

	if err := ctrl.wishService.Delete(uint(wishID), userID); err != nil {
		switch {
		case stderrors.Is(err, service.ErrWishNotFound):
			errors.NotFound(c, errors.WishNotFound, "Deseo no encontrado")
		case stderrors.Is(err, service.ErrWishForbidden):
			errors.Forbidden(c, "")
		default:
			log.Error("Failed to delete wish", err, map[string]interface{}{
				"wish_id": wishID,
				"user_id": userID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deseo eliminado",
	})
}
