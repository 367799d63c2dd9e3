package validation

import "errors"

// ValidateOTPCode checks the fixed 6-digit shape. Codes that fail here
// are rejected before any storage lookup.
func ValidateOTPCode(code string) error {
	if len(code) != 6 {
		return errors.New("code must be exactly 6 digits")
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return errors.New("code must be numeric")
		}
	}
	return nil
}
