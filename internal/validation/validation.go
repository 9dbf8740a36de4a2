// Package validation checks login and user form submissions before they reach
// the network. A failed check returns field-level messages and the caller
// skips the gateway entirely.
package validation

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/avolkovx/userdesk/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a field name to its first failed-rule message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(e))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

type loginRules struct {
	Email    string `validate:"required,min=3,excludesall=0x20"`
	Password string `validate:"required,min=8,max=12,excludesall=0x20"`
}

type userRules struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,max=20"`
	Password        string `validate:"omitempty,min=8,max=16"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

var messages = map[string]string{
	"Email.required":           "Email is required",
	"Email.min":                "Email must be at least 3 characters",
	"Email.max":                "Email must not exceed 20 characters",
	"Email.excludesall":        "No spaces allowed",
	"Password.required":        "Password is required",
	"Password.min":             "Password is too short",
	"Password.max":             "Password is too long",
	"Password.excludesall":     "No spaces allowed",
	"FirstName.required":       "First name is required",
	"LastName.required":        "Last name is required",
	"ConfirmPassword.eqfield":  "Passwords must match",
	"ConfirmPassword.required": "Confirm password is required",
}

// Login validates a login submission. Returns FieldErrors on failure.
func Login(c model.Credentials) error {
	return run(loginRules{Email: c.Email, Password: c.Password})
}

// UserForm validates a create/edit submission. On create the password is
// mandatory; on edit a blank password means "keep the current one".
func UserForm(f model.UserForm, isEdit bool) error {
	errs := collect(userRules{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	})
	if !isEdit && f.Password == "" {
		if _, ok := errs["Password"]; !ok {
			errs["Password"] = messages["Password.required"]
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func run(rules any) error {
	errs := collect(rules)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func collect(rules any) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(rules)
	if err == nil {
		return errs
	}
	for _, fe := range err.(validator.ValidationErrors) {
		if _, ok := errs[fe.Field()]; ok {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		errs[fe.Field()] = msg
	}
	return errs
}
