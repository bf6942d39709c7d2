// Package validate holds the member field rules shared by the API schemas
// and the console forms, exposed as go-playground/validator tags.
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	alnum8Re = regexp.MustCompile(`^[A-Za-z0-9]{8,}$`)
	letterRe = regexp.MustCompile(`[A-Za-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
)

// Email checks the basic no-whitespace user@host.tld shape.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone checks for exactly ten digits starting with 6-9 (no country code).
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// Password requires at least eight alphanumeric characters with at least
// one letter and one digit.
func Password(s string) bool {
	return alnum8Re.MatchString(s) && letterRe.MatchString(s) && digitRe.MatchString(s)
}

// Register installs the member field rules on v under the tags
// member_email, member_phone and member_password.
func Register(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"member_email":    Email,
		"member_phone":    Phone,
		"member_password": Password,
	}
	for tag, rule := range rules {
		rule := rule
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}
