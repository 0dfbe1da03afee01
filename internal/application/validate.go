package application

import (
	"unicode"

	"github.com/eventku/auth-api/pkg/validation"
)

// RegisterInput is the transient registration candidate. It is validated and
// discarded; only the derived user record persists.
type RegisterInput struct {
	Fullname        string `json:"fullname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ValidationError is the structured reason a candidate was rejected.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Details returns the error as a field->message map for the response envelope.
func (e *ValidationError) Details() map[string]string {
	return map[string]string{e.Field: e.Reason}
}

// Validate runs the ordered checks on the candidate and stops at the first
// failure. Order: presence, email shape, password policy, confirmation match.
func (in RegisterInput) Validate() *ValidationError {
	required := []struct {
		field string
		value string
	}{
		{"fullname", in.Fullname},
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
		{"confirmPassword", in.ConfirmPassword},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.field, Reason: "is required"}
		}
	}

	if err := validation.Instance().Var(in.Email, "email"); err != nil {
		return &ValidationError{Field: "email", Reason: "must be a valid email"}
	}

	if err := checkPasswordPolicy(in.Password); err != nil {
		return err
	}

	if in.ConfirmPassword != in.Password {
		return &ValidationError{Field: "confirmPassword", Reason: "does not match password"}
	}
	return nil
}

// checkPasswordPolicy enforces the strength policy: minimum 6 characters,
// at least one uppercase letter, at least one digit.
func checkPasswordPolicy(password string) *ValidationError {
	if len(password) < 6 {
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters long"}
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return &ValidationError{Field: "password", Reason: "must contain an uppercase letter"}
	}
	if !hasDigit {
		return &ValidationError{Field: "password", Reason: "must contain a digit"}
	}
	return nil
}
