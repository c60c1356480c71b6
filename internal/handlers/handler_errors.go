package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/civicdsi/budget_engagement_app/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage flattens gin's validator errors into a single readable
// message for the 400 payload.
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "Invalid request format: " + err.Error()
	}
	parts := make([]string, len(validationErrs))
	for i, fe := range validationErrs {
		parts[i] = fmt.Sprintf("field %s failed on %q", fe.Field(), fe.Tag())
	}
	return "Invalid request: " + strings.Join(parts, "; ")
}

// respondServiceError translates a service error into the matching HTTP
// status. fallback is the generic message for unexpected errors so internal
// details never leak to the client.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var insufficient *apperrors.InsufficientBudgetError
	if errors.As(err, &insufficient) {
		logger.Warn("Budget conservation rejected the request",
			slog.String("scope", insufficient.Scope),
			slog.Int64("scope_id", insufficient.ScopeID),
			slog.String("available", insufficient.Available.StringFixed(2)),
			slog.String("requested", insufficient.Requested.StringFixed(2)))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     insufficient.Error(),
			"scope":     insufficient.Scope,
			"scopeID":   insufficient.ScopeID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
			"shortfall": insufficient.Shortfall(),
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Entity not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error("Persistence failure", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": fallback})
	default:
		logger.Error("Unexpected service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// pathID parses the numeric :id segment. A false return means the response
// has already been written.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}
