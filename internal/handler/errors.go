package handler

import (
	"errors"
	"net/http"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/pkg/response"
	"github.com/gin-gonic/gin"
)

// handleError converts domain errors to HTTP responses
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrOwnerNotFound):
		response.Error(c, http.StatusNotFound, "OWNER_NOT_FOUND", err.Error(), "")
	case errors.Is(err, domain.ErrSnakeNotFound):
		response.Error(c, http.StatusNotFound, "SNAKE_NOT_FOUND", err.Error(), "")
	case errors.Is(err, domain.ErrCageNotFound):
		response.Error(c, http.StatusNotFound, "CAGE_NOT_FOUND", err.Error(), "")
	case errors.Is(err, domain.ErrEmailTaken):
		response.Conflict(c, "EMAIL_TAKEN", err.Error())
	case errors.Is(err, domain.ErrNoAvailability):
		response.Conflict(c, "NO_AVAILABILITY", err.Error())
	case errors.Is(err, domain.ErrAvailabilityConflict):
		response.Conflict(c, "AVAILABILITY_CONFLICT", err.Error())
	case errors.Is(err, domain.ErrNotAuthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), "")
	case domain.IsValidationError(err):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
	default:
		response.InternalError(c, err)
	}
}

func badRequest(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request", err.Error())
}
