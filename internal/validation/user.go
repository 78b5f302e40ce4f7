// Package validation checks request input and reports failures as per-field messages.
package validation

import (
	"regexp"
	"strings"

	"conduit/internal/models"
)

const (
	MsgBlank   = "can't be blank"
	MsgInvalid = "is invalid"
	MsgTaken   = "is already taken."
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// Errors collects field -> message pairs. The first message recorded for a field wins.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Err returns a validation AppError, or nil when nothing was recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return models.NewValidationErrors(e)
}

// Required records MsgBlank for field when value is empty after trimming.
func (e Errors) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, MsgBlank)
		return false
	}
	return true
}

func (e Errors) Username(value string) {
	if e.Required("username", value) && !usernameRegex.MatchString(value) {
		e.Add("username", MsgInvalid)
	}
}

func (e Errors) Email(value string) {
	if e.Required("email", value) && !emailRegex.MatchString(strings.TrimSpace(value)) {
		e.Add("email", MsgInvalid)
	}
}

// Registration validates a new account.
func Registration(username, email, password string) error {
	errs := Errors{}
	errs.Username(username)
	errs.Email(email)
	errs.Required("password", password)
	return errs.Err()
}

// UserUpdate validates only the fields being changed.
func UserUpdate(username, email, password *string) error {
	errs := Errors{}
	if username != nil {
		errs.Username(*username)
	}
	if email != nil {
		errs.Email(*email)
	}
	if password != nil {
		errs.Required("password", *password)
	}
	return errs.Err()
}
