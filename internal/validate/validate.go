// Package validate checks request payloads before they reach the credential
// store. Each operation has a typed input struct whose Validate method reports
// every violated field at once rather than stopping at the first.
package validate

import (
	"fmt"
	"net/mail"
	"time"
)

const minUsernameLength = 5

// FieldError names a single violated field and the reason.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors aggregates every field violation found in a payload.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func (e *Errors) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *Errors) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewUser is the payload for account registration. All fields except Birthday
// are required.
type NewUser struct {
	Username string
	Password string
	Email    string
	Birthday string
}

// Validate applies the registration preconditions and returns the parsed
// optional birthday. The returned error, when non-nil, is an *Errors listing
// every violation.
func (in NewUser) Validate() (*time.Time, error) {
	errs := &Errors{}

	checkUsername(errs, in.Username)
	if in.Password == "" {
		errs.add("Password", "password must not be empty")
	}
	checkEmail(errs, in.Email)
	birthday := checkBirthday(errs, in.Birthday)

	return birthday, errs.orNil()
}

// UserUpdate is the payload for profile updates. Empty fields are left
// unchanged; only the provided ones are validated.
type UserUpdate struct {
	Username string
	Password string
	Email    string
	Birthday string
}

// Validate checks every provided field and returns the parsed birthday when
// one was supplied.
func (in UserUpdate) Validate() (*time.Time, error) {
	errs := &Errors{}

	if in.Username != "" {
		checkUsername(errs, in.Username)
	}
	if in.Email != "" {
		checkEmail(errs, in.Email)
	}
	birthday := checkBirthday(errs, in.Birthday)

	return birthday, errs.orNil()
}

func checkUsername(errs *Errors, username string) {
	if len(username) < minUsernameLength {
		errs.add("Username", fmt.Sprintf("username must be at least %d characters", minUsernameLength))
	}
	if username != "" && !alphanumeric(username) {
		errs.add("Username", "username must contain only letters and digits")
	}
}

func checkEmail(errs *Errors, email string) {
	if email == "" {
		errs.add("Email", "email is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs.add("Email", "email does not appear to be valid")
	}
}

func checkBirthday(errs *Errors, birthday string) *time.Time {
	if birthday == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		errs.add("Birthday", "birthday must be a date in YYYY-MM-DD format")
		return nil
	}
	return &parsed
}

func alphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
