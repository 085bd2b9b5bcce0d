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

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// ListMembers returns every family member, ordered by name
// GET /api/v1/members
func (ctrl *UserController) ListMembers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if _, exists := middleware.GetUserID(c); !exists {
		errors.Unauthorized(c, "")
		return
	}

	members, err := ctrl.userService.ListMembers()
	if err != nil {
		log.Error("Failed to list members", err)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
	})
}

// GetMemberPage returns a member together with their annotated wishes and
// the surprise gifts visible to the caller.
// GET /api/v1/members/:id
func (ctrl *UserController) GetMemberPage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	viewerID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identificador de miembro no válido")
		return
	}

	page, err := ctrl.userService.GetMemberPage(uint(memberID), viewerID)
	if err != nil {
		if stderrors.Is(err, service.ErrUserNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Miembro no encontrado")
			return
		}
		log.Error("Failed to build member page", err, map[string]interface{}{
			"member_id": memberID,
			"viewer_id": viewerID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, page)
}
