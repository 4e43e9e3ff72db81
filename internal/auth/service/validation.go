package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

type RegisterInput struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,min=6,bcryptlen"`
}

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// bcrypt silently cares about bytes, not runes.
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= constants.PasswordMaxLength
	})
	return v
}

// translate maps the first failed rule to the user-facing validation error.
func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return commonerrors.ErrValidation.WithCause(err)
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrCredentialsRequired
		}
	}

	fe := fieldErrs[0]
	switch {
	case fe.Field() == "Password" && fe.Tag() == "min":
		return ErrPasswordTooShort
	case fe.Field() == "Password" && fe.Tag() == "bcryptlen":
		return ErrPasswordTooLong
	case fe.Field() == "Username" && fe.Tag() == "max":
		return ErrUsernameTooLong
	}
	return commonerrors.ErrValidation.WithCause(err)
}
