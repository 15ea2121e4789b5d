package auth

import (
	"net/mail"
	"strings"

	"github.com/asvabprep/backend/internal/domain"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt truncates beyond 72 bytes
)

// RegisterInput holds the data for creating a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// Validate checks registration input and collects all field errors.
func (in *RegisterInput) Validate() error {
	var fieldErrs []domain.FieldError

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "email", Message: "is not a valid email address"})
	}

	if len(in.Password) < minPasswordLength {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	} else if len(in.Password) > maxPasswordLength {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "password", Message: "must be at most 72 characters"})
	}

	if len(fieldErrs) > 0 {
		return domain.NewValidationErrors(fieldErrs)
	}
	return nil
}

// LoginInput holds credentials for password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks login input.
func (in *LoginInput) Validate() error {
	var fieldErrs []domain.FieldError

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "email", Message: "is required"})
	}
	if in.Password == "" {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "password", Message: "is required"})
	}

	if len(fieldErrs) > 0 {
		return domain.NewValidationErrors(fieldErrs)
	}
	return nil
}

// RefreshInput holds the raw refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// Validate checks that a refresh token was provided.
func (in *RefreshInput) Validate() error {
	if strings.TrimSpace(in.RefreshToken) == "" {
		return domain.NewValidationError("refresh_token", "is required")
	}
	return nil
}
