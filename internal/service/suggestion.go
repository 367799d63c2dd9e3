package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/storage"
)

var ErrSuggestionEmpty = errors.New("please provide either a suggestion text or attach a file")

type Attachment struct {
	Name string
	Size int64
	File io.Reader
}

type SuggestionService struct {
	suggestionRepository repository.SuggestionRepository
	storage              storage.Storage
}

func NewSuggestionService(suggestionRepository repository.SuggestionRepository, storage storage.Storage) *SuggestionService {
	return &SuggestionService{
		suggestionRepository: suggestionRepository,
		storage:              storage,
	}
}

// Submit stores a suggestion with an optional attachment. The
// attachment bytes go to object storage first; the row keeps only the
// key, original name, and size.
func (s *SuggestionService) Submit(ctx context.Context, userID, text string, attachment *Attachment) (*model.Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return nil, ErrSuggestionEmpty
	}

	suggestion := &model.Suggestion{
		UserID: userID,
		Status: model.SuggestionStatusPending,
	}
	if text != "" {
		suggestion.Suggestion = &text
	}

	if attachment != nil {
		key := fmt.Sprintf("suggestions/%d-%s%s",
			time.Now().UnixMilli(), uuid.New().String()[:8], filepath.Ext(attachment.Name))

		err := s.storage.Save(ctx, key, attachment.File)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}

		suggestion.AttachmentPath = &key
		suggestion.AttachmentName = &attachment.Name
		suggestion.AttachmentSize = &attachment.Size
	}

	err := s.suggestionRepository.Create(suggestion)
	if err != nil {
		// Don't leave orphaned bytes behind
		if suggestion.AttachmentPath != nil {
			delErr := s.storage.Delete(ctx, *suggestion.AttachmentPath)
			if delErr != nil {
				slog.Error("failed to clean up attachment", "error", delErr, "key", *suggestion.AttachmentPath)
			}
		}
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}

	slog.Info("suggestion submitted", "suggestion_id", suggestion.ID, "user_id", userID)
	return suggestion, nil
}

func (s *SuggestionService) ListForUser(userID string) ([]model.Suggestion, error) {
	return s.suggestionRepository.ByUserID(userID)
}

// Get returns a suggestion if the caller owns it or is an admin.
func (s *SuggestionService) Get(user *model.User, id string) (*model.Suggestion, error) {
	suggestion, err := s.suggestionRepository.ByID(id)
	if err != nil {
		return nil, err
	}
	if suggestion.UserID != user.ID && !user.IsAdmin() {
		return nil, ErrNotOwner
	}
	return suggestion, nil
}

// Delete removes the caller's suggestion and its stored attachment.
func (s *SuggestionService) Delete(ctx context.Context, userID, id string) error {
	suggestion, err := s.suggestionRepository.ByID(id)
	if err != nil {
		return err
	}
	if suggestion.UserID != userID {
		return ErrNotOwner
	}

	err = s.suggestionRepository.Delete(id)
	if err != nil {
		return err
	}

	if suggestion.AttachmentPath != nil {
		err = s.storage.Delete(ctx, *suggestion.AttachmentPath)
		if err != nil {
			slog.Warn("failed to delete attachment", "error", err, "key", *suggestion.AttachmentPath)
		}
	}

	return nil
}

func (s *SuggestionService) ListAll(status string, page, limit int) ([]model.Suggestion, int, error) {
	if status != "" && !model.ValidSuggestionStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.suggestionRepository.ListAll(status, limit, (page-1)*limit)
}

func (s *SuggestionService) UpdateStatus(id, status string, adminNotes *string) (*model.Suggestion, error) {
	if !model.ValidSuggestionStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.suggestionRepository.UpdateStatus(id, status, adminNotes)
}

// AttachmentURL resolves the stored key to a fetchable URL.
func (s *SuggestionService) AttachmentURL(suggestion *model.Suggestion) string {
	if suggestion.AttachmentPath == nil {
		return ""
	}
	return s.storage.URL(*suggestion.AttachmentPath)
}
