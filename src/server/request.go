package server

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const emailTag = "site_email"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type (
	ContactRequest struct {
		Name    string `json:"name" validate:"required"`
		Email   string `json:"email" validate:"required,site_email"`
		Subject string `json:"subject" validate:"required"`
		Message string `json:"message" validate:"required"`
	}

	NewsletterRequest struct {
		Email string `json:"email" validate:"required,site_email"`
	}
)

// newValidator registers the address check shared by both forms. It is
// looser than the built-in "email" rule.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		panic(fmt.Errorf("register %s validation: %w", emailTag, err))
	}
	return validate
}

// IsValidEmail reports whether address passes the form email check.
func IsValidEmail(address string) bool {
	return emailPattern.MatchString(address)
}

// failedTag returns the first failing rule, giving "required" precedence over
// format rules so a missing field is reported before a malformed one.
func failedTag(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return ""
	}
	for _, fe := range errs {
		if fe.Tag() == "required" {
			return "required"
		}
	}
	return errs[0].Tag()
}
