package models

import (
	"errors"
	"net/http"
)

// Common errors returned by the repository layer
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrCheckoutNotFound = errors.New("checkout not found")
	ErrDuplicateEmail   = errors.New("email already taken")
	ErrTokenNotFound    = errors.New("token not found")
)

// AppError is the failure shape every service returns to the HTTP layer.
// Message is a localizable key, StatusCode the stable HTTP status. Handlers
// serialize it as {type: "Error", message, statusCode} and never leak
// anything else.
type AppError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError reports missing or invalid required fields.
func NewValidationError(message string) *AppError {
	return &AppError{Type: "Error", Message: message, StatusCode: http.StatusBadRequest}
}

// NewForbiddenError reports an attempt to mutate a protected derived field.
func NewForbiddenError(message string) *AppError {
	return &AppError{Type: "Error", Message: message, StatusCode: http.StatusUnauthorized}
}

// NewInvalidStateError reports a business-rule violation, e.g. lowering a
// ticket quantity below its sold count.
func NewInvalidStateError(message string) *AppError {
	return &AppError{Type: "Error", Message: message, StatusCode: http.StatusUnauthorized}
}

// NewNotFoundError reports an absent entity.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: "Error", Message: message, StatusCode: http.StatusNotFound}
}

// NewUnauthorizedError reports an authentication failure.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: "Error", Message: message, StatusCode: http.StatusUnauthorized}
}

// NewConflictError reports a uniqueness conflict (duplicate email).
func NewConflictError(message string) *AppError {
	return &AppError{Type: "Error", Message: message, StatusCode: http.StatusBadRequest}
}

// NewServerError reports an unexpected persistence or runtime failure.
func NewServerError() *AppError {
	return &AppError{Type: "Error", Message: "serverError", StatusCode: http.StatusInternalServerError}
}

// AsAppError unwraps err into an *AppError, or wraps it as a server error
// so unexpected failures never reach the client with internal detail.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewServerError()
}
