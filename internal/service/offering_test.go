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

type fakeOfferingRepository struct {
	mu        sync.Mutex
	offerings map[string]*model.Offering
}

func newFakeOfferingRepository() *fakeOfferingRepository {
	return &fakeOfferingRepository{offerings: map[string]*model.Offering{}}
}

func (f *fakeOfferingRepository) Create(o *model.Offering) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	clone := *o
	f.offerings[o.ID] = &clone
	return nil
}

func (f *fakeOfferingRepository) ByID(id string) (*model.Offering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offerings[id]
	if !ok {
		return nil, repository.ErrOfferingNotFound
	}
	clone := *o
	return &clone, nil
}

func (f *fakeOfferingRepository) ByUserID(userID string) ([]model.Offering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Offering
	for _, o := range f.offerings {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOfferingRepository) Update(o *model.Offering) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.offerings[o.ID]; !ok {
		return repository.ErrOfferingNotFound
	}
	clone := *o
	f.offerings[o.ID] = &clone
	return nil
}

func (f *fakeOfferingRepository) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.offerings[id]; !ok {
		return repository.ErrOfferingNotFound
	}
	delete(f.offerings, id)
	return nil
}

func (f *fakeOfferingRepository) ReplaceAllForUser(userID string, offerings []model.Offering) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, o := range f.offerings {
		if o.UserID == userID {
			delete(f.offerings, id)
		}
	}
	for i := range offerings {
		o := offerings[i]
		o.UserID = userID
		if o.ID == "" {
			o.ID = uuid.New().String()
		}
		f.offerings[o.ID] = &o
	}
	return nil
}

func newTestOfferingService(t *testing.T) (*OfferingService, *model.User) {
	t.Helper()

	authService, userRepo := newTestAuthService()
	user, err := authService.Register(RegisterInput{Email: "a@example.com", Password: "str0ng-pass"})
	require.NoError(t, err)

	return NewOfferingService(newFakeOfferingRepository(), userRepo), user
}

func TestOfferingCreateSetsFlag(t *testing.T) {
	authService, userRepo := newTestAuthService()
	user, err := authService.Register(RegisterInput{Email: "a@example.com", Password: "str0ng-pass"})
	require.NoError(t, err)

	svc := NewOfferingService(newFakeOfferingRepository(), userRepo)

	created, err := svc.Create(user.ID, &model.Offering{
		Interests:   model.StringList{"ai"},
		OfferStatus: model.OfferStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.UserID)

	refreshed, err := userRepo.ByID(user.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.ServiceDetailsCompleted)
}

func TestOfferingOwnership(t *testing.T) {
	svc, user := newTestOfferingService(t)

	created, err := svc.Create(user.ID, &model.Offering{OfferStatus: model.OfferStatusActive})
	require.NoError(t, err)

	_, err = svc.Get("someone-else", created.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Update("someone-else", created.ID, &model.Offering{})
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete("someone-else", created.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The owner still can
	_, err = svc.Get(user.ID, created.ID)
	assert.NoError(t, err)
	assert.NoError(t, svc.Delete(user.ID, created.ID))
}

func TestOfferingUpdatePreservesIdentity(t *testing.T) {
	svc, user := newTestOfferingService(t)

	created, err := svc.Create(user.ID, &model.Offering{
		Keywords:    model.StringList{"old"},
		OfferStatus: model.OfferStatusActive,
	})
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, created.ID, &model.Offering{
		Keywords: model.StringList{"new"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, user.ID, updated.UserID)
	assert.Equal(t, model.StringList{"new"}, updated.Keywords)
	// Omitted status falls back to the stored one
	assert.Equal(t, model.OfferStatusActive, updated.OfferStatus)
}

func TestOfferingReplaceAll(t *testing.T) {
	svc, user := newTestOfferingService(t)

	_, err := svc.Create(user.ID, &model.Offering{OfferStatus: model.OfferStatusActive})
	require.NoError(t, err)
	_, err = svc.Create(user.ID, &model.Offering{OfferStatus: model.OfferStatusActive})
	require.NoError(t, err)

	saved, err := svc.ReplaceAll(user.ID, []model.Offering{
		{Interests: model.StringList{"fresh"}, OfferStatus: model.OfferStatusActive},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.Equal(t, model.StringList{"fresh"}, saved[0].Interests)
}

func TestOfferingGetUnknown(t *testing.T) {
	svc, user := newTestOfferingService(t)

	_, err := svc.Get(user.ID, "missing")
	assert.ErrorIs(t, err, repository.ErrOfferingNotFound)
}
