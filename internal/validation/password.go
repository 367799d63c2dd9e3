package validation

import (
	"errors"
	"strings"
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong   = errors.New("password must not exceed 72 characters")
	ErrPasswordTooCommon = errors.New("password is too common, please choose a stronger one")
)

// ValidatePassword enforces minimum strength for password accounts.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	// bcrypt silently truncates beyond 72 bytes
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
	}
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return ErrPasswordTooCommon
		}
	}

	return nil
}
