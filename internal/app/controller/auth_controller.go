package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/internal/errors"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" binding:"required,url"`
}

// Login logs a family member in by allowlisted email
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Introduce un email válido")
		return
	}

	user, token, err := ctrl.authService.Login(req.Email)
	if err != nil {
		if stderrors.Is(err, service.ErrEmailNotAllowed) {
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthEmailNotAllowed, "Este email no está autorizado para acceder")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		errors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout revokes the current session token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		// Revocation is best effort; the client drops the token either way.
		log.Warn("Logout could not revoke token", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sesión cerrada",
	})
}

// GetMe returns the logged-in member
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if stderrors.Is(err, service.ErrUserNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Miembro no encontrado")
			return
		}
		log.Error("Failed to fetch current user", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// UpdateAvatar stores the member's avatar URL after the upload finished
// PUT /api/v1/profile/avatar
func (ctrl *AuthController) UpdateAvatar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "URL de avatar no válida")
		return
	}

	user, err := ctrl.authService.UpdateAvatar(userID, req.AvatarURL)
	if err != nil {
		if stderrors.Is(err, service.ErrUserNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Miembro no encontrado")
			return
		}
		log.Error("Failed to update avatar", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}
