package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeNetwork              = "NETWORK_ERROR"
	ErrCodeRemote               = "REMOTE_ERROR"
	ErrCodeConfirmationRequired = "CONFIRMATION_REQUIRED"
)

// ConnectionErrorMessage is shown for every transport-level failure.
const ConnectionErrorMessage = "Connection error"

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "REMOTE_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR whose message is shown
// to the user as is.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// NewNetworkError wraps a transport failure or an unparsable response.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: ConnectionErrorMessage,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// NewRemoteError is a business error reported by a backend resource.
// message is empty when the response carried no error text.
func NewRemoteError(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeRemote,
		Message: message,
		Status:  status,
	}
}

func NewConfirmationRequiredError(action string) *AppError {
	return &AppError{
		Code:    ErrCodeConfirmationRequired,
		Message: fmt.Sprintf("%s requires confirmation", action),
		Status:  http.StatusConflict,
	}
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}

// UserMessage returns the text a user should see for err. Remote errors
// without a message and unknown errors fall back to fallback; transport
// errors always read as a connection error.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return fallback
	}
	switch appErr.Code {
	case ErrCodeNetwork:
		return ConnectionErrorMessage
	case ErrCodeRemote, ErrCodeValidation, ErrCodeConfirmationRequired:
		if appErr.Message != "" {
			return appErr.Message
		}
	}
	return fallback
}
