package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. Handlers map these to HTTP statuses.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorEntry is a single message inside the error envelope.
type ErrorEntry struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON envelope for every non-2xx response:
// {"errors":[{"message": "..."}]}.
type ErrorResponse struct {
	Errors []ErrorEntry `json:"errors"`
}

// ErrorEnvelope builds an ErrorResponse from one or more messages.
func ErrorEnvelope(messages ...string) ErrorResponse {
	entries := make([]ErrorEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, ErrorEntry{Message: m})
	}
	return ErrorResponse{Errors: entries}
}

// AppError represents a custom application error. Messages holds the ordered
// list of user-facing messages for validation failures; Message is used when
// there is a single message.
type AppError struct {
	Code     string
	Message  string
	Messages []string
	Err      error
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

// UserMessages returns the ordered client-visible messages for the error.
func (e *AppError) UserMessages() []string {
	if len(e.Messages) > 0 {
		return e.Messages
	}
	return []string{e.Message}
}

// Predefined error constructors
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

func NewValidationError(messages ...string) *AppError {
	first := ""
	if len(messages) > 0 {
		first = messages[0]
	}
	return &AppError{
		Code:     CodeValidation,
		Message:  first,
		Messages: messages,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

// RespondWithError writes the JSON error envelope for err with the given
// status. Internal detail (wrapped driver errors) is never serialized; only
// the AppError's user messages reach the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorEnvelope(appErr.UserMessages()...))
	}
	return c.Status(status).JSON(ErrorEnvelope("Internal server error"))
}
