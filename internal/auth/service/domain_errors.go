package service

import (
	"net/http"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryAuth,
		http.StatusUnauthorized,
		"Invalid username or password",
	)

	// Duplicate usernames answer 400, not 409.
	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Username already exists",
	)

	ErrCredentialsRequired = commonerrors.NewValidationError(
		"CREDENTIALS_REQUIRED",
		"Username and password are required",
	)

	ErrPasswordTooShort = commonerrors.NewValidationError(
		"PASSWORD_TOO_SHORT",
		"Password must be at least 6 characters",
	)

	ErrPasswordTooLong = commonerrors.NewValidationError(
		"PASSWORD_TOO_LONG",
		"Password must be at most 72 bytes",
	)

	ErrUsernameTooLong = commonerrors.NewValidationError(
		"USERNAME_TOO_LONG",
		"Username must be at most 50 characters",
	)
)
