package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/validation"
)

var (
	ErrIdentifierRequired = errors.New("identifier is required")

	// ErrCodeInvalid covers wrong, expired, and already-used codes
	// alike. Collapsing them keeps verification from leaking which
	// condition failed.
	ErrCodeInvalid = errors.New("invalid or expired code")
)

// OTPService issues and verifies short-lived single-use numeric codes
// scoped to an (identifier, purpose) pair.
type OTPService struct {
	otpRepository repository.OTPRepository
	expiry        time.Duration

	// now is swapped out in tests to simulate clock movement.
	now func() time.Time
}

func NewOTPService(otpRepository repository.OTPRepository, expiry time.Duration) *OTPService {
	return &OTPService{
		otpRepository: otpRepository,
		expiry:        expiry,
		now:           time.Now,
	}
}

// Issue mints a fresh code for the pair, invalidating any prior code,
// and returns the plaintext so the caller can hand it to the email
// dispatcher in the same request.
func (s *OTPService) Issue(identifier string, purpose model.OTPPurpose) (string, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if identifier == "" {
		return "", ErrIdentifierRequired
	}
	if purpose == "" {
		purpose = model.PurposeLogin
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	now := s.now()
	otp := &model.OTP{
		Identifier: identifier,
		Purpose:    purpose,
		Code:       code,
		ExpiresAt:  now.Add(s.expiry),
		Used:       false,
		CreatedAt:  now,
	}

	err = s.otpRepository.Replace(otp)
	if err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	slog.Info("otp issued", "identifier", identifier, "purpose", purpose, "expires_at", otp.ExpiresAt)
	return code, nil
}

// Verify consumes the code. It succeeds at most once per issued code;
// any failure comes back as ErrCodeInvalid.
func (s *OTPService) Verify(identifier, code string, purpose model.OTPPurpose) error {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if identifier == "" {
		return ErrIdentifierRequired
	}
	if purpose == "" {
		purpose = model.PurposeLogin
	}

	// Shape check before touching storage
	if err := validation.ValidateOTPCode(code); err != nil {
		return ErrCodeInvalid
	}

	_, err := s.otpRepository.Consume(identifier, purpose, code, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			slog.Info("otp verification failed", "identifier", identifier, "purpose", purpose)
			return ErrCodeInvalid
		}
		return fmt.Errorf("failed to verify code: %w", err)
	}

	slog.Info("otp verified", "identifier", identifier, "purpose", purpose)
	return nil
}

// Prune removes used and expired codes older than the given age.
// Optional maintenance; verification semantics do not depend on it.
func (s *OTPService) Prune(olderThan time.Duration) (int64, error) {
	return s.otpRepository.DeleteExpired(olderThan)
}

// generateCode returns a uniform 6-digit code in [100000, 999999].
// The range floor keeps every code a fixed 6 characters wide.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}
