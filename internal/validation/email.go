package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// ValidateEmail checks format and length. net/mail follows RFC 5322,
// which is looser than most signup forms, so we also require a dot in
// the domain part.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return errors.New("email is required")
	}

	if len(email) > 254 {
		return errors.New("email is too long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address")
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at+1:], ".") {
		return errors.New("invalid email address")
	}

	return nil
}
