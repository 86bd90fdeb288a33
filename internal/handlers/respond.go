package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/shiomura/team-task-api/internal/errors"
	"github.com/shiomura/team-task-api/internal/repository"
	"github.com/shiomura/team-task-api/internal/services"
)

// respondServiceError maps service-layer errors onto the API error envelope.
// Unexpected errors are logged and normalized to a generic 500 so internal
// detail never leaks.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, "Validation failed", validationErr.Fields)
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, forbiddenReason(err))
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrUserHasTasks):
		apierrors.Conflict(c, "User still has tasks assigned or created; reassign or delete them first")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidResetToken):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		apierrors.ServiceUnavailable(c, "")
	default:
		log.Printf("Unexpected error: %v", err)
		apierrors.InternalError(c, "")
	}
}

// forbiddenReason strips the sentinel prefix so the client sees only the
// human-readable reason.
func forbiddenReason(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return ""
}
