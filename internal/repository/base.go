// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"devfolio/internal/models"
)

// queryTimeout bounds every store call so a stalled database surfaces as a
// STORE_UNAVAILABLE error instead of hanging the request.
const queryTimeout = 3 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// storeErr maps low-level store failures to AppError kinds. Timeouts become
// STORE_UNAVAILABLE; everything else is an internal error.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewUnavailableError(err)
	}
	return models.NewInternalError(err)
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
