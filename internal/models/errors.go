package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is the application error type carried across layers. Code is a
// stable machine-readable identifier; Message is safe to show to clients.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns an error for a missing entity.
func NewNotFoundError(entity string, id any) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", entity),
		Err:     fmt.Errorf("%s %v not found", entity, id),
	}
}

// NewValidationError returns an error for invalid input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message}
}

// NewUnauthorizedError returns an error for failed authentication.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message}
}

// NewForbiddenError returns an error for an authenticated caller acting on
// a resource they do not own.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: message}
}

// NewConflictError returns an error for a uniqueness violation.
func NewConflictError(message string) *AppError {
	return &AppError{Code: "CONFLICT", Message: message}
}

// NewUnavailableError returns an error for a store that did not answer in
// time. The client-facing message deliberately says nothing more.
func NewUnavailableError(err error) *AppError {
	return &AppError{Code: "STORE_UNAVAILABLE", Message: "Server Error", Err: err}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "Server Error", Err: err}
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "CONFLICT":
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a JSON error response with the given status.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		return c.Status(status).JSON(fiber.Map{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// RespondWithAppError writes a JSON error response using the error's own
// status mapping. Non-AppError values become a 500.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		return RespondWithError(c, appErr.StatusCode(), appErr)
	}
	return RespondWithError(c, fiber.StatusInternalServerError,
		NewInternalError(err))
}
