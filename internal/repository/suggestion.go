package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/valueaim/api/internal/model"
)

var ErrSuggestionNotFound = errors.New("suggestion not found")

type SuggestionRepository interface {
	Create(suggestion *model.Suggestion) error
	ByID(id string) (*model.Suggestion, error)
	ByUserID(userID string) ([]model.Suggestion, error)
	ListAll(status string, limit, offset int) ([]model.Suggestion, int, error)
	UpdateStatus(id, status string, adminNotes *string) (*model.Suggestion, error)
	Delete(id string) error
}

type suggestionRepository struct {
	db *sqlx.DB
}

func NewSuggestionRepository(db *sqlx.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(suggestion *model.Suggestion) error {
	if suggestion.ID == "" {
		suggestion.ID = uuid.New().String()
	}
	if suggestion.Status == "" {
		suggestion.Status = model.SuggestionStatusPending
	}
	now := time.Now()
	suggestion.CreatedAt = now
	suggestion.UpdatedAt = now

	query := `
		INSERT INTO suggestions (
			id, user_id, suggestion, attachment_path, attachment_name,
			attachment_size, status, admin_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(query,
		suggestion.ID, suggestion.UserID, suggestion.Suggestion,
		suggestion.AttachmentPath, suggestion.AttachmentName,
		suggestion.AttachmentSize, suggestion.Status, suggestion.AdminNotes,
		suggestion.CreatedAt, suggestion.UpdatedAt,
	)
	return err
}

func (r *suggestionRepository) ByID(id string) (*model.Suggestion, error) {
	suggestion := &model.Suggestion{}
	err := r.db.Get(suggestion, `SELECT * FROM suggestions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSuggestionNotFound
	}
	return suggestion, err
}

func (r *suggestionRepository) ByUserID(userID string) ([]model.Suggestion, error) {
	suggestions := []model.Suggestion{}
	err := r.db.Select(&suggestions,
		`SELECT * FROM suggestions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return suggestions, err
}

func (r *suggestionRepository) ListAll(status string, limit, offset int) ([]model.Suggestion, int, error) {
	suggestions := []model.Suggestion{}
	var total int

	if status != "" {
		err := r.db.Get(&total, `SELECT COUNT(*) FROM suggestions WHERE status = $1`, status)
		if err != nil {
			return nil, 0, err
		}
		err = r.db.Select(&suggestions, `
			SELECT * FROM suggestions WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3
		`, status, limit, offset)
		return suggestions, total, err
	}

	err := r.db.Get(&total, `SELECT COUNT(*) FROM suggestions`)
	if err != nil {
		return nil, 0, err
	}
	err = r.db.Select(&suggestions, `
		SELECT * FROM suggestions
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	return suggestions, total, err
}

func (r *suggestionRepository) UpdateStatus(id, status string, adminNotes *string) (*model.Suggestion, error) {
	suggestion := &model.Suggestion{}
	query := `
		UPDATE suggestions
		SET status = $1,
		    admin_notes = COALESCE($2, admin_notes),
		    updated_at = $3
		WHERE id = $4
		RETURNING *
	`
	err := r.db.Get(suggestion, query, status, adminNotes, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSuggestionNotFound
	}
	return suggestion, err
}

func (r *suggestionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM suggestions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSuggestionNotFound
	}

	return nil
}
