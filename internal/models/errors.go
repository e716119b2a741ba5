package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
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

// Error codes returned by the API. Conflict codes tell the client which
// precondition failed so it can refresh occupancy and re-decide instead
// of blindly retrying.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeModeratorCannotJoin = "MODERATOR_CANNOT_JOIN"
	CodeTontineFull         = "TONTINE_FULL"
	CodePositionTaken       = "POSITION_TAKEN"
	CodeAlreadyJoined       = "ALREADY_JOINED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeStoreUnavailable    = "STORE_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewModeratorCannotJoinError() *AppError {
	return &AppError{
		Code:    CodeModeratorCannotJoin,
		Message: "The moderator of a tontine cannot join it as a participant",
	}
}

func NewTontineFullError() *AppError {
	return &AppError{
		Code:    CodeTontineFull,
		Message: "This tontine is full",
	}
}

func NewPositionTakenError(position int) *AppError {
	return &AppError{
		Code:    CodePositionTaken,
		Message: fmt.Sprintf("Position %d is already taken", position),
	}
}

func NewAlreadyJoinedError() *AppError {
	return &AppError{
		Code:    CodeAlreadyJoined,
		Message: "You already hold a position in this tontine",
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewStoreUnavailableError(err error) *AppError {
	return &AppError{
		Code:    CodeStoreUnavailable,
		Message: "Data store temporarily unavailable",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForError maps an application error to an HTTP status code.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeModeratorCannotJoin:
		return fiber.StatusForbidden
	case CodeTontineFull, CodePositionTaken, CodeAlreadyJoined:
		return fiber.StatusConflict
	case CodeStoreUnavailable:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
