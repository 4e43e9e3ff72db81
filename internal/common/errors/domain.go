package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryAuth         ErrorCategory = "AUTH"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
	WithMessage(message string) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches on code, so a sentinel still matches after WithCause or WithMessage.
func (e *domainError) Is(target error) bool {
	var de DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code() == e.code
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

func (e *domainError) WithMessage(message string) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  message,
		cause:    e.cause,
	}
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func NewValidationError(code, message string) DomainError {
	return NewDomainError(code, CategoryValidation, http.StatusBadRequest, message)
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidSessionSecret = NewDomainError(
		"INVALID_SESSION_SECRET",
		CategoryValidation,
		http.StatusInternalServerError,
		"SESSION_SECRET must be at least 32 bytes",
	)

	ErrInvalidConfig = NewDomainError(
		"INVALID_CONFIG",
		CategoryValidation,
		http.StatusInternalServerError,
		"invalid configuration value",
	)

	ErrValidation = NewValidationError(
		"VALIDATION_FAILED",
		"validation failed",
	)

	ErrUnauthorized = NewDomainError(
		"UNAUTHORIZED",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"authentication required",
	)

	ErrUsernameAlreadyExists = NewDomainError(
		"USERNAME_ALREADY_EXISTS",
		CategoryConflict,
		http.StatusBadRequest,
		"username already exists",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrItemNotFound = NewDomainError(
		"ITEM_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"Item not found",
	)

	ErrSubscriptionNotFound = NewDomainError(
		"SUBSCRIPTION_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"subscription not found",
	)

	ErrSessionNotFound = NewDomainError(
		"SESSION_NOT_FOUND",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"session not found",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrDatabaseError = NewDomainError(
		"DATABASE_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)

	ErrDeliveryFailed = NewDomainError(
		"DELIVERY_FAILED",
		CategoryExternal,
		http.StatusBadGateway,
		"notification delivery failed",
	)
)
