package models

import (
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a registered account. PasswordHash is never serialized;
// the active session tokens live in their own table and are likewise kept
// out of every response body.
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Age          int       `json:"age" db:"age"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserCreateRequest represents the data needed to sign up a new user
type UserCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// UserUpdateRequest represents the fields a user may patch on their own
// account. Nil pointers mean "leave unchanged".
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
}

// Validate validates the signup data
func (req *UserCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return NewValidationError("fieldsRequired")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if req.Age < 0 {
		return NewValidationError("ageMustBePositive")
	}
	return nil
}

// Validate validates a profile patch. Only the provided fields are checked.
func (req *UserUpdateRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return NewValidationError("fieldsRequired")
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return err
		}
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return err
		}
	}
	if req.Age != nil && *req.Age < 0 {
		return NewValidationError("ageMustBePositive")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("fieldsRequired")
	}
	if !emailRegex.MatchString(email) {
		return NewValidationError("invalidEmail")
	}
	return nil
}

// Passwords must be at least 7 characters and must not contain the literal
// word "password".
func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return NewValidationError("fieldsRequired")
	}
	if len(password) < 7 {
		return NewValidationError("passwordTooShort")
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return NewValidationError("passwordCannotBeLiteral")
	}
	return nil
}
