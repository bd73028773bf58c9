package domain

import (
	"fmt"
	"strings"
	"unicode"
)

const MinPasswordLength = 8

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	var missing []string
	if !upper {
		missing = append(missing, "an uppercase letter")
	}
	if !lower {
		missing = append(missing, "a lowercase letter")
	}
	if !digit {
		missing = append(missing, "a digit")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: password needs %s", ErrValidation, strings.Join(missing, ", "))
	}

	return nil
}

func ValidateUsername(username string) error {
	return requireField("username", username)
}

// ConfirmDeletion guards destructive deletes behind retyping the expected text.
func ConfirmDeletion(expected, typed string) error {
	if strings.TrimSpace(expected) == "" || strings.TrimSpace(typed) != strings.TrimSpace(expected) {
		return fmt.Errorf("%w: type %q to confirm", ErrConfirmationMismatch, expected)
	}
	return nil
}
