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

type AssignmentController struct {
	assignmentService service.AssignmentService
}

func NewAssignmentController(assignmentService service.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

type ClaimRequest struct {
	WishID   uint `json:"wish_id" binding:"required"`
	External bool `json:"external"`
}

// Claim marks a wish as taken, either by the caller or by someone outside
// the family when external is set.
// POST /api/v1/assignments
func (ctrl *AssignmentController) Claim(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Datos de asignación no válidos")
		return
	}

	var assignment *model.Assignment
	var err error
	if req.External {
		assignment, err = ctrl.assignmentService.ClaimExternal(req.WishID, userID)
	} else {
		assignment, err = ctrl.assignmentService.Claim(req.WishID, userID)
	}
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrWishNotFound):
			errors.NotFound(c, errors.WishNotFound, "Deseo no encontrado")
		case stderrors.Is(err, service.ErrSelfAssignment):
			errors.RespondWithError(c, http.StatusForbidden, errors.AssignmentSelfForbidden, "No puedes asignarte tus propios deseos")
		case stderrors.Is(err, service.ErrAlreadyAssigned):
			errors.Conflict(c, errors.AssignmentAlreadyAssigned, "Este deseo ya está asignado")
		default:
			log.Error("Failed to claim wish", err, map[string]interface{}{
				"wish_id":  req.WishID,
				"user_id":  userID,
				"external": req.External,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"assignment": assignment,
	})
}

// Unclaim releases the caller's claim on a wish. Releasing a wish the caller
// never claimed succeeds without effect.
// DELETE /api/v1/assignments
func (ctrl *AssignmentController) Unclaim(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	wishID, err := strconv.ParseUint(c.Query("wish_id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identificador de deseo no válido")
		return
	}

	if err := ctrl.assignmentService.Unclaim(uint(wishID), userID); err != nil {
		log.Error("Failed to release claim", err, map[string]interface{}{
			"wish_id": wishID,
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Asignación liberada",
	})
}

// ListMine returns the wishes the caller has claimed, newest first
// GET /api/v1/assignments
func (ctrl *AssignmentController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	assignments, err := ctrl.assignmentService.ListByClaimer(userID)
	if err != nil {
		log.Error("Failed to list claims", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
	})
}
