package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
)

type fakeSuggestionRepository struct {
	mu          sync.Mutex
	suggestions map[string]*model.Suggestion
	createErr   error
}

func newFakeSuggestionRepository() *fakeSuggestionRepository {
	return &fakeSuggestionRepository{suggestions: map[string]*model.Suggestion{}}
}

func (f *fakeSuggestionRepository) Create(s *model.Suggestion) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	clone := *s
	f.suggestions[s.ID] = &clone
	return nil
}

func (f *fakeSuggestionRepository) ByID(id string) (*model.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.suggestions[id]
	if !ok {
		return nil, repository.ErrSuggestionNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSuggestionRepository) ByUserID(userID string) ([]model.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Suggestion
	for _, s := range f.suggestions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSuggestionRepository) ListAll(status string, limit, offset int) ([]model.Suggestion, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Suggestion
	for _, s := range f.suggestions {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	return out, len(out), nil
}

func (f *fakeSuggestionRepository) UpdateStatus(id, status string, adminNotes *string) (*model.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.suggestions[id]
	if !ok {
		return nil, repository.ErrSuggestionNotFound
	}
	s.Status = status
	if adminNotes != nil {
		s.AdminNotes = adminNotes
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSuggestionRepository) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.suggestions[id]; !ok {
		return repository.ErrSuggestionNotFound
	}
	delete(f.suggestions, id)
	return nil
}

// fakeStorage records saves and deletes in memory.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Save(ctx context.Context, key string, file io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) URL(key string) string {
	return "https://storage.test/" + key
}

func TestSuggestionSubmitTextOnly(t *testing.T) {
	repo := newFakeSuggestionRepository()
	svc := NewSuggestionService(repo, newFakeStorage())

	s, err := svc.Submit(context.Background(), "u1", "  dark mode please  ", nil)
	require.NoError(t, err)
	require.NotNil(t, s.Suggestion)
	assert.Equal(t, "dark mode please", *s.Suggestion)
	assert.Equal(t, model.SuggestionStatusPending, s.Status)
	assert.Nil(t, s.AttachmentPath)
}

func TestSuggestionSubmitWithAttachment(t *testing.T) {
	repo := newFakeSuggestionRepository()
	store := newFakeStorage()
	svc := NewSuggestionService(repo, store)

	s, err := svc.Submit(context.Background(), "u1", "", &Attachment{
		Name: "mockup.png",
		Size: 4,
		File: strings.NewReader("data"),
	})
	require.NoError(t, err)
	require.NotNil(t, s.AttachmentPath)
	assert.True(t, strings.HasPrefix(*s.AttachmentPath, "suggestions/"))
	assert.True(t, strings.HasSuffix(*s.AttachmentPath, ".png"))
	require.NotNil(t, s.AttachmentName)
	assert.Equal(t, "mockup.png", *s.AttachmentName)

	store.mu.Lock()
	assert.Len(t, store.objects, 1)
	store.mu.Unlock()
}

func TestSuggestionSubmitEmpty(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepository(), newFakeStorage())

	_, err := svc.Submit(context.Background(), "u1", "   ", nil)
	assert.ErrorIs(t, err, ErrSuggestionEmpty)
}

func TestSuggestionSubmitCleansUpOnDBFailure(t *testing.T) {
	repo := newFakeSuggestionRepository()
	repo.createErr = errors.New("db down")
	store := newFakeStorage()
	svc := NewSuggestionService(repo, store)

	_, err := svc.Submit(context.Background(), "u1", "", &Attachment{
		Name: "mockup.png",
		Size: 4,
		File: strings.NewReader("data"),
	})
	require.Error(t, err)

	// The uploaded object must not be orphaned
	store.mu.Lock()
	assert.Empty(t, store.objects)
	store.mu.Unlock()
}

func TestSuggestionGetOwnership(t *testing.T) {
	repo := newFakeSuggestionRepository()
	svc := NewSuggestionService(repo, newFakeStorage())

	s, err := svc.Submit(context.Background(), "u1", "idea", nil)
	require.NoError(t, err)

	owner := &model.User{ID: "u1", Role: model.RoleUser}
	stranger := &model.User{ID: "u2", Role: model.RoleUser}
	admin := &model.User{ID: "u3", Role: model.RoleAdmin}

	_, err = svc.Get(owner, s.ID)
	assert.NoError(t, err)

	_, err = svc.Get(stranger, s.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Get(admin, s.ID)
	assert.NoError(t, err)
}

func TestSuggestionDeleteRemovesAttachment(t *testing.T) {
	repo := newFakeSuggestionRepository()
	store := newFakeStorage()
	svc := NewSuggestionService(repo, store)

	s, err := svc.Submit(context.Background(), "u1", "", &Attachment{
		Name: "mockup.png",
		Size: 4,
		File: strings.NewReader("data"),
	})
	require.NoError(t, err)

	// Only the owner can delete
	err = svc.Delete(context.Background(), "u2", s.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.Delete(context.Background(), "u1", s.ID))

	store.mu.Lock()
	assert.Empty(t, store.objects)
	store.mu.Unlock()

	_, err = repo.ByID(s.ID)
	assert.ErrorIs(t, err, repository.ErrSuggestionNotFound)
}

func TestSuggestionUpdateStatus(t *testing.T) {
	repo := newFakeSuggestionRepository()
	svc := NewSuggestionService(repo, newFakeStorage())

	s, err := svc.Submit(context.Background(), "u1", "idea", nil)
	require.NoError(t, err)

	notes := "shipping next quarter"
	updated, err := svc.UpdateStatus(s.ID, model.SuggestionStatusImplemented, &notes)
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionStatusImplemented, updated.Status)

	_, err = svc.UpdateStatus(s.ID, "bogus", nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSuggestionAttachmentURL(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepository(), newFakeStorage())

	key := "suggestions/123-abc.png"
	s := &model.Suggestion{AttachmentPath: &key}
	assert.Equal(t, "https://storage.test/suggestions/123-abc.png", svc.AttachmentURL(s))

	assert.Empty(t, svc.AttachmentURL(&model.Suggestion{}))
}
