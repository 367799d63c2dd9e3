package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
)

type fakeCompanyRepository struct {
	mu        sync.Mutex
	companies map[string]*model.Company // keyed by user id
}

func newFakeCompanyRepository() *fakeCompanyRepository {
	return &fakeCompanyRepository{companies: map[string]*model.Company{}}
}

func (f *fakeCompanyRepository) ByUserID(userID string) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[userID]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCompanyRepository) Create(c *model.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	clone := *c
	f.companies[c.UserID] = &clone
	return nil
}

func (f *fakeCompanyRepository) Update(c *model.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.companies[c.UserID]; !ok {
		return repository.ErrCompanyNotFound
	}
	clone := *c
	f.companies[c.UserID] = &clone
	return nil
}

func (f *fakeCompanyRepository) DeleteByUserID(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.companies[userID]; !ok {
		return repository.ErrCompanyNotFound
	}
	delete(f.companies, userID)
	return nil
}

func newTestCompanyService(t *testing.T) (*CompanyService, *fakeUserRepository, *model.User) {
	t.Helper()

	authService, userRepo := newTestAuthService()
	user, err := authService.Register(RegisterInput{Email: "a@example.com", Password: "str0ng-pass"})
	require.NoError(t, err)

	return NewCompanyService(newFakeCompanyRepository(), userRepo), userRepo, user
}

func TestCompanySaveCreatesAndFlagsUser(t *testing.T) {
	svc, userRepo, user := newTestCompanyService(t)

	name := "Acme"
	company, err := svc.Save(user.ID, &model.Company{
		CompanyName: &name,
		Employees:   "11-50",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, company.UserID)

	refreshed, err := userRepo.ByID(user.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.CompanyDetailsCompleted)
}

func TestCompanySaveUpsertsSecondWrite(t *testing.T) {
	svc, _, user := newTestCompanyService(t)

	first := "Acme"
	created, err := svc.Save(user.ID, &model.Company{CompanyName: &first, Employees: "1-10"})
	require.NoError(t, err)

	second := "Acme Corp"
	updated, err := svc.Save(user.ID, &model.Company{CompanyName: &second, Employees: "11-50"})
	require.NoError(t, err)

	// Still one company, same identity
	assert.Equal(t, created.ID, updated.ID)
	require.NotNil(t, updated.CompanyName)
	assert.Equal(t, "Acme Corp", *updated.CompanyName)
}

func TestCompanySaveRejectsBadEmployeeRange(t *testing.T) {
	svc, _, user := newTestCompanyService(t)

	_, err := svc.Save(user.ID, &model.Company{Employees: "lots"})
	assert.ErrorIs(t, err, ErrInvalidEmployeeRange)
}

func TestCompanyDeleteClearsFlags(t *testing.T) {
	svc, userRepo, user := newTestCompanyService(t)

	_, err := svc.Save(user.ID, &model.Company{Employees: "1-10"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID))

	_, err = svc.ByUserID(user.ID)
	assert.ErrorIs(t, err, repository.ErrCompanyNotFound)

	refreshed, err := userRepo.ByID(user.ID)
	require.NoError(t, err)
	assert.False(t, refreshed.CompanyDetailsCompleted)
	assert.False(t, refreshed.HasCompletedOnboarding)
}
