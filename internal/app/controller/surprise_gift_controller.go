package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/internal/errors"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
)

type SurpriseGiftController struct {
	giftService service.SurpriseGiftService
}

func NewSurpriseGiftController(giftService service.SurpriseGiftService) *SurpriseGiftController {
	return &SurpriseGiftController{
		giftService: giftService,
	}
}

type CreateSurpriseGiftRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ListGifts returns surprise gifts planned for ?recipient_id=, or the gifts
// the caller is giving when the parameter is absent. The recipient always
// sees an empty list for their own id.
// GET /api/v1/surprise-gifts
func (ctrl *SurpriseGiftController) ListGifts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	viewerID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	recipientParam := c.Query("recipient_id")
	if recipientParam == "" {
		gifts, err := ctrl.giftService.ListGivenBy(viewerID)
		if err != nil {
			log.Error("Failed to list given surprise gifts", err, map[string]interface{}{
				"user_id": viewerID,
			})
			errors.InternalError(c, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"surprise_gifts": gifts,
		})
		return
	}

	recipientID, err := strconv.ParseUint(recipientParam, 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identificador de miembro no válido")
		return
	}

	gifts, err := ctrl.giftService.ListFor(uint(recipientID), viewerID)
	if err != nil {
		log.Error("Failed to list surprise gifts", err, map[string]interface{}{
			"recipient_id": recipientID,
			"viewer_id":    viewerID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"surprise_gifts": gifts,
	})
}

// CreateGift records a surprise gift for another member
// POST /api/v1/surprise-gifts
func (ctrl *SurpriseGiftController) CreateGift(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	giverID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateSurpriseGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Datos del regalo no válidos")
		return
	}

	gift, err := ctrl.giftService.Create(giverID, service.CreateSurpriseGiftInput{
		RecipientID: req.RecipientID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrSelfGift):
			errors.BadRequest(c, errors.SurpriseSelfForbidden, "No puedes regalarte a ti mismo")
		case stderrors.Is(err, service.ErrGiftTitleRequired):
			errors.BadRequest(c, errors.SurpriseTitleRequired, "El título es requerido")
		case stderrors.Is(err, service.ErrRecipientNotFound):
			errors.NotFound(c, errors.SurpriseRecipientNotFound, "Destinatario no encontrado")
		default:
			log.Error("Failed to create surprise gift", err, map[string]interface{}{
				"giver_id":     giverID,
				"recipient_id": req.RecipientID,
			})
			errors.ParseAndRespond(c, http.StatusInternalServerError, err, "create surprise gift")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"surprise_gift": gift,
	})
}

// DeleteGift removes a surprise gift the caller is giving. Deleting a gift
// that is not the caller's succeeds without effect.
// DELETE /api/v1/surprise-gifts/:id
func (ctrl *SurpriseGiftController) DeleteGift(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	giverID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	giftID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identificador de regalo no válido")
		return
	}

	if err := ctrl.giftService.Delete(uint(giftID), giverID); err != nil {
		log.Error("Failed to delete surprise gift", err, map[string]interface{}{
			"gift_id":  giftID,
			"giver_id": giverID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Regalo eliminado",
	})
}
