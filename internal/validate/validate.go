package validate

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom rules the request types use.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("password", PasswordStrength)
	return v
}

// PasswordStrength enforces the registration password policy: at least 8
// characters containing at least one letter and one digit.
func PasswordStrength(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if len(value) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
