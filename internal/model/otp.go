package model

import (
	"fmt"
	"time"
)

// OTPPurpose scopes a one-time code to a single flow so a code issued
// for one flow can never be replayed in another.
type OTPPurpose string

const (
	PurposeLogin           OTPPurpose = "login"
	PurposeSignup          OTPPurpose = "signup"
	PurposeAccountCreation OTPPurpose = "accountCreation"
	PurposeResetPassword   OTPPurpose = "resetPassword"
)

// ParseOTPPurpose maps a request value to a known purpose.
// An empty value defaults to login.
func ParseOTPPurpose(s string) (OTPPurpose, error) {
	switch OTPPurpose(s) {
	case "":
		return PurposeLogin, nil
	case PurposeLogin, PurposeSignup, PurposeAccountCreation, PurposeResetPassword:
		return OTPPurpose(s), nil
	default:
		return "", fmt.Errorf("unknown otp purpose %q", s)
	}
}

// OTP is a single-use numeric code bound to an (identifier, purpose)
// pair. The identifier is an email address, not a foreign key: a code
// can be issued and verified before the account exists.
type OTP struct {
	ID         string     `db:"id"`
	Identifier string     `db:"identifier"`
	Purpose    OTPPurpose `db:"purpose"`
	Code       string     `db:"code"`
	ExpiresAt  time.Time  `db:"expires_at"`
	Used       bool       `db:"used"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

func (o *OTP) IsValid() bool {
	return !o.Used && !o.IsExpired()
}
