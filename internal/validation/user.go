// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode"

	"forkful/internal/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.@+-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > models.MaxUsernameLength {
		return fmt.Errorf("username must not exceed %d characters", models.MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, digits and @/./+/-/_ characters")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if len(email) > models.MaxEmailLength {
		return fmt.Errorf("email must not exceed %d characters", models.MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > models.MaxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", models.MaxPasswordLength)
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}

// ValidateName checks a first or last name field
func ValidateName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(name) > models.MaxNameLength {
		return fmt.Errorf("%s must not exceed %d characters", field, models.MaxNameLength)
	}
	return nil
}
