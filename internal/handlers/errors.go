package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps a service error to an HTTP status and whether its
// message is safe to return to the client.
func statusForError(err error) (int, bool) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrAlreadyPosted):
		return http.StatusConflict, true
	case errors.Is(err, apperrors.ErrUnbalancedJournal), errors.Is(err, apperrors.ErrMissingFxRate):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, apperrors.ErrMissingAccountConfiguration):
		// Configuration problem on our side, but the message names the
		// company and role, which operators need.
		return http.StatusInternalServerError, true
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		return appErr.Code, true
	}
	return http.StatusInternalServerError, false
}

// respondWithError logs err and writes the mapped status. fallback is sent
// instead of err's text for unexpected failures.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, expose := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}

	msg := fallback
	if expose {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

// requireUserID reads the authenticated user id, answering 401 when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// bindJSON binds the body, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
