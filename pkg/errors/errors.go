// Package errors provides the application error taxonomy.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class.
type ErrorCode string

const (
	// Generic errors (1xxx)
	CodeSuccess      ErrorCode = "0"
	CodeUnknown      ErrorCode = "1000"
	CodeInvalidParam ErrorCode = "1001"

	// Resource errors (2xxx)
	CodeProjectNotFound   ErrorCode = "2001"
	CodePageGroupNotFound ErrorCode = "2002"
	CodePageNotFound      ErrorCode = "2003"

	// Business errors (3xxx)
	CodeValidationFailed  ErrorCode = "3001"
	CodeTranslationFailed ErrorCode = "3003"
	CodeInvalidPageRef    ErrorCode = "3005"

	// External service errors (4xxx)
	CodeDatabaseError    ErrorCode = "4001"
	CodeLLMProviderError ErrorCode = "4004"
)

// AppError is the error type surfaced across layer boundaries.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a detail string, returning a copy.
func (e *AppError) WithDetail(detail string) *AppError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// New creates an AppError with the HTTP status derived from the code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap creates an AppError wrapping an underlying error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeValidationFailed, CodeInvalidPageRef:
		return http.StatusBadRequest
	case CodeProjectNotFound, CodePageGroupNotFound, CodePageNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid parameter")

	ErrProjectNotFound   = New(CodeProjectNotFound, "project not found")
	ErrPageGroupNotFound = New(CodePageGroupNotFound, "page group not found")
	ErrPageNotFound      = New(CodePageNotFound, "page not found")

	ErrValidationFailed = New(CodeValidationFailed, "validation failed")
	ErrInvalidPageRef   = New(CodeInvalidPageRef, "invalid page reference")
)

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError converts err to an AppError, wrapping unknown errors.
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
