package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
)

// fakeOTPRepository mirrors the real repository's single-code-per-pair
// and atomic-consume behavior in memory.
type fakeOTPRepository struct {
	mu   sync.Mutex
	otps map[string]*model.OTP
}

func newFakeOTPRepository() *fakeOTPRepository {
	return &fakeOTPRepository{otps: map[string]*model.OTP{}}
}

func key(identifier string, purpose model.OTPPurpose) string {
	return identifier + "|" + string(purpose)
}

func (f *fakeOTPRepository) Replace(otp *model.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *otp
	f.otps[key(otp.Identifier, otp.Purpose)] = &clone
	return nil
}

func (f *fakeOTPRepository) Consume(identifier string, purpose model.OTPPurpose, code string, now time.Time) (*model.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	otp, ok := f.otps[key(identifier, purpose)]
	if !ok || otp.Used || otp.Code != code || !otp.ExpiresAt.After(now) {
		return nil, repository.ErrOTPNotFound
	}
	otp.Used = true
	clone := *otp
	return &clone, nil
}

func (f *fakeOTPRepository) DeleteExpired(olderThan time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var n int64
	for k, otp := range f.otps {
		if (otp.Used && otp.CreatedAt.Before(cutoff)) || otp.ExpiresAt.Before(cutoff) {
			delete(f.otps, k)
			n++
		}
	}
	return n, nil
}

func newTestOTPService(repo repository.OTPRepository) *OTPService {
	return NewOTPService(repo, 5*time.Minute)
}

func TestOTPIssueFormat(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	// Codes are uniform 6-digit strings, never shorter
	for i := 0; i < 50; i++ {
		code, err := svc.Issue("user@example.com", model.PurposeLogin)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q has non-digit", code)
		}
	}
}

func TestOTPVerifyHappyPath(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	code, err := svc.Issue("User@Example.com", model.PurposeSignup)
	require.NoError(t, err)

	// Identifier normalization: issue and verify with different casing
	err = svc.Verify("user@example.com", code, model.PurposeSignup)
	assert.NoError(t, err)
}

func TestOTPSingleUse(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	code, err := svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)

	require.NoError(t, svc.Verify("user@example.com", code, model.PurposeLogin))

	// Replay with the same code fails
	err = svc.Verify("user@example.com", code, model.PurposeLogin)
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestOTPExpiry(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	current := time.Now()
	svc.now = func() time.Time { return current }

	code, err := svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)

	// One second before the deadline the code still works; issue again
	// to check the boundary from a fresh code
	current = current.Add(5*time.Minute - time.Second)
	require.NoError(t, svc.Verify("user@example.com", code, model.PurposeLogin))

	code, err = svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)

	current = current.Add(5*time.Minute + time.Second)
	err = svc.Verify("user@example.com", code, model.PurposeLogin)
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestOTPPurposeScoping(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	loginCode, err := svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)
	resetCode, err := svc.Issue("user@example.com", model.PurposeResetPassword)
	require.NoError(t, err)

	// A login code cannot pass reset-password verification
	err = svc.Verify("user@example.com", loginCode, model.PurposeResetPassword)
	assert.ErrorIs(t, err, ErrCodeInvalid)

	// Both codes remain valid in their own scopes
	assert.NoError(t, svc.Verify("user@example.com", loginCode, model.PurposeLogin))
	assert.NoError(t, svc.Verify("user@example.com", resetCode, model.PurposeResetPassword))
}

func TestOTPResendInvalidatesPrior(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	first, err := svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)
	second, err := svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)

	if first != second {
		err = svc.Verify("user@example.com", first, model.PurposeLogin)
		assert.ErrorIs(t, err, ErrCodeInvalid)
	}
	assert.NoError(t, svc.Verify("user@example.com", second, model.PurposeLogin))
}

func TestOTPResendDoesNotTouchOtherIdentifiers(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	aliceCode, err := svc.Issue("alice@example.com", model.PurposeLogin)
	require.NoError(t, err)
	_, err = svc.Issue("bob@example.com", model.PurposeLogin)
	require.NoError(t, err)

	assert.NoError(t, svc.Verify("alice@example.com", aliceCode, model.PurposeLogin))
}

func TestOTPVerifyRejectsMalformedCodes(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	_, err := svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)

	for _, code := range []string{"", "12345", "1234567", "12345a", "abcdef", " 123456"} {
		err = svc.Verify("user@example.com", code, model.PurposeLogin)
		assert.ErrorIs(t, err, ErrCodeInvalid, "code %q", code)
	}
}

func TestOTPIssueRequiresIdentifier(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	_, err := svc.Issue("  ", model.PurposeLogin)
	assert.ErrorIs(t, err, ErrIdentifierRequired)

	err = svc.Verify("", "123456", model.PurposeLogin)
	assert.ErrorIs(t, err, ErrIdentifierRequired)
}

func TestOTPDefaultPurposeIsLogin(t *testing.T) {
	svc := newTestOTPService(newFakeOTPRepository())

	code, err := svc.Issue("user@example.com", "")
	require.NoError(t, err)

	assert.NoError(t, svc.Verify("user@example.com", code, model.PurposeLogin))
}

func TestOTPPrune(t *testing.T) {
	repo := newFakeOTPRepository()
	svc := newTestOTPService(repo)

	// A consumed code becomes prunable once old enough
	code, err := svc.Issue("user@example.com", model.PurposeLogin)
	require.NoError(t, err)
	require.NoError(t, svc.Verify("user@example.com", code, model.PurposeLogin))

	repo.mu.Lock()
	for _, otp := range repo.otps {
		otp.CreatedAt = time.Now().Add(-48 * time.Hour)
		otp.ExpiresAt = time.Now().Add(-47 * time.Hour)
	}
	repo.mu.Unlock()

	n, err := svc.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
