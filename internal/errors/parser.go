package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database errors into user-facing codes and messages.
// Sensitive details stay in the logs; the context string ("wish", "surprise
// gift", ...) picks the right message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Error interno del servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	// Unique constraint (23505). The only unique business index is
	// assignments.wish_id, so a duplicate there means a lost claim race.
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		if strings.Contains(errStrLower, "idx_assignments_wish_id") || strings.Contains(errStrLower, "assignments") {
			return ErrorInfo{
				Code:    AssignmentAlreadyAssigned,
				Message: "Este deseo ya está asignado",
			}
		}
		if strings.Contains(errStrLower, "email") || strings.Contains(errStrLower, "idx_users_email") {
			return ErrorInfo{
				Code:    ResourceAlreadyExists,
				Message: "Ya existe un miembro con este email",
			}
		}
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Ya existe este dato",
		}
	}

	// Foreign key constraint (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		if strings.Contains(errStrLower, "recipient_id") {
			return ErrorInfo{
				Code:    SurpriseRecipientNotFound,
				Message: "Destinatario no encontrado",
			}
		}
		if strings.Contains(errStrLower, "wish_id") {
			return ErrorInfo{
				Code:    WishNotFound,
				Message: "Deseo no encontrado",
			}
		}
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "El dato referenciado no existe",
		}
	}

	// Not null constraint (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		if strings.Contains(errStrLower, "title") {
			return ErrorInfo{Code: ValidationRequired, Message: "El título es requerido"}
		}
		if strings.Contains(errStrLower, "email") {
			return ErrorInfo{Code: ValidationRequired, Message: "El email es requerido"}
		}
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Falta un campo obligatorio",
		}
	}

	// Network errors against the database or external services
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "No se pudo conectar con el servidor. Inténtalo de nuevo en unos minutos",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "wish") || strings.Contains(contextLower, "deseo") {
		return "Deseo no encontrado"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "member") {
		return "Miembro no encontrado"
	}
	if strings.Contains(contextLower, "surprise") || strings.Contains(contextLower, "gift") {
		return "Regalo sorpresa no encontrado"
	}
	if strings.Contains(contextLower, "assignment") {
		return "Asignación no encontrada"
	}
	if strings.Contains(contextLower, "notification") {
		return "Notificación no encontrada"
	}

	return "No se encontró el dato solicitado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Error al crear. Inténtalo de nuevo en unos minutos"
	}
	if strings.Contains(contextLower, "update") {
		return "Error al actualizar. Inténtalo de nuevo en unos minutos"
	}
	if strings.Contains(contextLower, "delete") {
		return "Error al eliminar. Inténtalo de nuevo en unos minutos"
	}

	return "Error interno del servidor"
}

// ParseAndRespond parses a database error and writes the response in one
// step, for controller default branches.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
