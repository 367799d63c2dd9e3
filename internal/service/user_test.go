package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/validation"
)

func newTestUserService(t *testing.T) (*UserService, *model.User) {
	t.Helper()

	authService, repo := newTestAuthService()
	user, err := authService.Register(RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "str0ng-pass",
	})
	require.NoError(t, err)

	return NewUserService(repo, authService), user
}

func TestUpdateProfile(t *testing.T) {
	svc, user := newTestUserService(t)

	name := "Alice B"
	email := "Alice.B@Example.com"
	updated, err := svc.UpdateProfile(user.ID, &name, &email, nil)
	require.NoError(t, err)

	require.NotNil(t, updated.Name)
	assert.Equal(t, "Alice B", *updated.Name)
	assert.Equal(t, "alice.b@example.com", updated.Email)
}

func TestUpdateProfileRejectsBadEmail(t *testing.T) {
	svc, user := newTestUserService(t)

	email := "not-an-email"
	_, err := svc.UpdateProfile(user.ID, nil, &email, nil)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestChangePassword(t *testing.T) {
	svc, user := newTestUserService(t)

	err := svc.ChangePassword(user.ID, "str0ng-pass", "new-str0ng-pass")
	require.NoError(t, err)

	// The old password no longer logs in, the new one does
	_, err = svc.authService.Login("alice@example.com", "str0ng-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.authService.Login("alice@example.com", "new-str0ng-pass")
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, user := newTestUserService(t)

	err := svc.ChangePassword(user.ID, "wrong-pass", "new-str0ng-pass")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePasswordWeakNew(t *testing.T) {
	svc, user := newTestUserService(t)

	err := svc.ChangePassword(user.ID, "str0ng-pass", "short")
	assert.ErrorIs(t, err, validation.ErrPasswordTooShort)
}

func TestChangePasswordOAuthAccount(t *testing.T) {
	authService, repo := newTestAuthService()
	svc := NewUserService(repo, authService)

	user, err := authService.Register(RegisterInput{
		Email:      "g@example.com",
		Provider:   model.ProviderGoogle,
		ProviderID: "google-123",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, "anything12", "new-str0ng-pass")
	assert.ErrorIs(t, err, ErrOAuthAccount)
}

func TestUpdatePlan(t *testing.T) {
	svc, user := newTestUserService(t)

	updated, err := svc.UpdatePlan(user.ID, model.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, model.PlanPro, updated.Plan)

	_, err = svc.UpdatePlan(user.ID, "Gold Plan")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}
