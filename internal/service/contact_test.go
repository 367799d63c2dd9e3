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

type fakeContactRepository struct {
	mu       sync.Mutex
	contacts map[string]*model.Contact
}

func newFakeContactRepository() *fakeContactRepository {
	return &fakeContactRepository{contacts: map[string]*model.Contact{}}
}

func (f *fakeContactRepository) Create(c *model.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	clone := *c
	f.contacts[c.ID] = &clone
	return nil
}

func (f *fakeContactRepository) ByID(id string) (*model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contacts[id]
	if !ok {
		return nil, repository.ErrContactNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeContactRepository) List(status string, limit, offset int) ([]model.Contact, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Contact
	for _, c := range f.contacts {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (f *fakeContactRepository) UpdateStatus(id, status string, adminNotes *string) (*model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contacts[id]
	if !ok {
		return nil, repository.ErrContactNotFound
	}
	c.Status = status
	if adminNotes != nil {
		c.AdminNotes = adminNotes
	}
	clone := *c
	return &clone, nil
}

func (f *fakeContactRepository) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.contacts[id]; !ok {
		return repository.ErrContactNotFound
	}
	delete(f.contacts, id)
	return nil
}

func validContactInput() ContactInput {
	return ContactInput{
		FirstName:   "Alice",
		LastName:    "Brown",
		Email:       "Alice@Example.com",
		PhoneNumber: "+1 555 0100",
		Subject:     "Pricing",
		Message:     "How much for the enterprise tier?",
	}
}

func TestContactSubmit(t *testing.T) {
	svc := NewContactService(newFakeContactRepository())

	contact, err := svc.Submit(validContactInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", contact.Email)
	assert.Equal(t, model.ContactStatusNew, contact.Status)
	assert.Nil(t, contact.UserID)
}

func TestContactSubmitAttributed(t *testing.T) {
	svc := NewContactService(newFakeContactRepository())

	userID := "u1"
	contact, err := svc.Submit(validContactInput(), &userID)
	require.NoError(t, err)
	require.NotNil(t, contact.UserID)
	assert.Equal(t, "u1", *contact.UserID)
}

func TestContactSubmitMissingFields(t *testing.T) {
	svc := NewContactService(newFakeContactRepository())

	in := validContactInput()
	in.Message = "   "
	_, err := svc.Submit(in, nil)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestContactSubmitBadEmail(t *testing.T) {
	svc := NewContactService(newFakeContactRepository())

	in := validContactInput()
	in.Email = "not-an-email"
	_, err := svc.Submit(in, nil)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestContactListStatusFilter(t *testing.T) {
	repo := newFakeContactRepository()
	svc := NewContactService(repo)

	_, err := svc.Submit(validContactInput(), nil)
	require.NoError(t, err)

	contacts, total, err := svc.List(model.ContactStatusNew, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, contacts, 1)

	_, _, err = svc.List("bogus", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestContactUpdateStatus(t *testing.T) {
	repo := newFakeContactRepository()
	svc := NewContactService(repo)

	contact, err := svc.Submit(validContactInput(), nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(contact.ID, model.ContactStatusResolved, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ContactStatusResolved, updated.Status)

	_, err = svc.UpdateStatus(contact.ID, "bogus", nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
