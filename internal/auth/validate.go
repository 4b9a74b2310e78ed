package auth

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameRE = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	emailRE    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// FieldError names one invalid registration field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FieldErrors collects every invalid field so the client can surface all
// problems at once instead of one per round trip.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return strings.Join(msgs, "; ")
}

// ValidateRegistration checks every field independently and returns all
// failures together. A nil result means the input is structurally valid;
// username availability is a separate, store-backed check.
func ValidateRegistration(username, password, verify, email string) FieldErrors {
	var errs FieldErrors

	if !usernameRE.MatchString(username) {
		errs = append(errs, FieldError{Field: "username", Reason: "Invalid Username"})
	}

	if len(password) < 3 || len(password) > 20 {
		errs = append(errs, FieldError{Field: "password", Reason: "Invalid Password"})
	} else if password != verify {
		errs = append(errs, FieldError{Field: "verify", Reason: "Passwords Don't Match"})
	}

	// Email is optional; only validate when present.
	if email != "" && !emailRE.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Reason: "Invalid Email Address"})
	}

	return errs
}
