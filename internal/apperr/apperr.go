// Package apperr holds the errors the HTTP API renders to clients.
package apperr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeConflict       = "CONFLICT"
	CodeUnavailable    = "UNAVAILABLE"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	ErrNotFound       = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")
	ErrInvalidRequest = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")
	ErrConflict       = New(fiber.StatusConflict, CodeConflict, "the request conflicts with the current state of the resource")
	ErrUnavailable    = New(fiber.StatusServiceUnavailable, CodeUnavailable, "service temporarily unavailable, try again later")
	ErrInternalError  = New(fiber.StatusInternalServerError, CodeInternalError, "an internal error has occurred")
)

type Extras map[string]any

// Error is an error with the status, code and message a client gets.
type Error struct {
	Status  int
	Code    string
	Message string
	Extras  Extras
}

func New(status int, code string, message string) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// WithMessage returns a copy of e with a new message. e is left untouched.
func (e Error) WithMessage(format string, parts ...any) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

// WithExtras returns a copy of e carrying extras merged into the response body.
func (e Error) WithExtras(extras Extras) *Error {
	merged := make(Extras, len(e.Extras)+len(extras))
	for k, v := range e.Extras {
		merged[k] = v
	}
	for k, v := range extras {
		merged[k] = v
	}
	e.Extras = merged
	return &e
}

func NewInvalidViolations(violations any) *Error {
	return ErrInvalidRequest.WithExtras(Extras{
		"violations": violations,
	})
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
