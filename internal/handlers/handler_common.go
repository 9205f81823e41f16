package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// respondError maps application errors onto HTTP statuses. Unexpected errors
// are logged with detail and answered with the generic message only.
func respondError(c *gin.Context, logger *slog.Logger, err error, genericMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		logger.Warn("precondition failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	default:
		logger.Error(genericMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericMsg})
	}
}

// requireUserID pulls the authenticated user ID from the request context and
// answers 401 when it is missing.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("failed to bind request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// bindQuery binds the query string and answers 400 on failure.
func bindQuery(c *gin.Context, logger *slog.Logger, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		logger.Warn("failed to bind query params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}
