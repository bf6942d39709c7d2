package handler

import (
	"strings"

	"github.com/memberhub/member-console/internal/pkg/validate"
)

// Validation messages shown next to the offending field.
const (
	msgNameTooShort    = "Name must be at least 5 characters long."
	msgInvalidEmail    = "Please enter a valid email address."
	msgInvalidPhone    = "Phone number must be exactly 10 digits."
	msgInvalidPassword = "Password must be at least 8 characters and contain a letter and a number."
	msgRequired        = "This field is required."
	msgInvalidRole     = "Role must be admin or user."
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f *loginForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

func (f *loginForm) validate() map[string]string {
	errs := map[string]string{}
	if f.Email == "" {
		errs["email"] = msgRequired
	} else if !validate.Email(f.Email) {
		errs["email"] = msgInvalidEmail
	}
	if f.Password == "" {
		errs["password"] = msgRequired
	}
	return errs
}

type registerForm struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phoneNumber"`
	Password    string `form:"password"`
}

func (f *registerForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
}

func (f *registerForm) validate() map[string]string {
	errs := map[string]string{}
	if len(f.Name) < 5 {
		errs["name"] = msgNameTooShort
	}
	if !validate.Email(f.Email) {
		errs["email"] = msgInvalidEmail
	}
	if !validate.Phone(f.PhoneNumber) {
		errs["phoneNumber"] = msgInvalidPhone
	}
	if !validate.Password(f.Password) {
		errs["password"] = msgInvalidPassword
	}
	return errs
}

type profileForm struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phoneNumber"`
	Password    string `form:"password"`
}

func (f *profileForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
}

// validate checks the profile fields. Password is optional: leaving it
// blank keeps the current one.
func (f *profileForm) validate() map[string]string {
	errs := map[string]string{}
	if len(f.Name) < 5 {
		errs["name"] = msgNameTooShort
	}
	if !validate.Email(f.Email) {
		errs["email"] = msgInvalidEmail
	}
	if !validate.Phone(f.PhoneNumber) {
		errs["phoneNumber"] = msgInvalidPhone
	}
	if f.Password != "" && !validate.Password(f.Password) {
		errs["password"] = msgInvalidPassword
	}
	return errs
}

type adminMemberForm struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phoneNumber"`
	Role        string `form:"role"`
}

func (f *adminMemberForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.Role = strings.ToLower(strings.TrimSpace(f.Role))
}

func (f *adminMemberForm) validate() map[string]string {
	errs := map[string]string{}
	if len(f.Name) < 5 {
		errs["name"] = msgNameTooShort
	}
	if !validate.Email(f.Email) {
		errs["email"] = msgInvalidEmail
	}
	if !validate.Phone(f.PhoneNumber) {
		errs["phoneNumber"] = msgInvalidPhone
	}
	if f.Role != "admin" && f.Role != "user" {
		errs["role"] = msgInvalidRole
	}
	return errs
}
