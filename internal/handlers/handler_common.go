package handlers

import (
	"errors"
	"net/http"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/services"
	"github.com/dealerhq/dealer_crm_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServiceError maps service errors onto HTTP statuses. Sentinel order
// matters: the gate errors are checked before the generic conflict category so
// their specific messages survive to the client.
func handleServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, services.ErrNotApprovable),
		errors.Is(err, services.ErrInvalidCommissionState):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = "You are not allowed to perform this operation"
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code != 0 {
			status = appErr.Code
			message = appErr.Message
		}
	}

	if status == http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled service error", "error", err.Error())
	}

	c.JSON(status, ErrorResponse{Error: message})
}

// requireAuthenticatedUser pulls the acting user id off the request context,
// aborting with 401 when the middleware did not set one.
func requireAuthenticatedUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return "", false
	}
	return userID, true
}
