package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithError maps a service error to its status code. Client errors carry
// the service message; server errors are logged and reported with fallback.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status < http.StatusInternalServerError {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	logger.Error(fallback, slog.String("error", err.Error()))
	message := fallback
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	c.JSON(status, ErrorResponse{Error: message})
}

// tenantID reads the authenticated user id; the user is the tenant on every core route.
func tenantID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return id, ok
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
