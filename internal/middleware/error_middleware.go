package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/logger"
)

// HandleAPIError translates a service error into the response envelope.
// Every recoverable failure wraps one of the apperrors sentinels; anything
// else is a server fault and logged as such.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvariant):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
		return
	}

	resp := dto.NewErrorResponse(status, message, "")

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		resp.Data = custom.Details
	}

	c.JSON(status, resp)
}

// HandleValidationError translates a request-binding failure into a 400.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		http.StatusBadRequest, "Invalid request payload", err.Error()))
}
