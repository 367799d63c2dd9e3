package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/valueaim/api/internal/model"
)

var ErrContactNotFound = errors.New("contact not found")

type ContactRepository interface {
	Create(contact *model.Contact) error
	ByID(id string) (*model.Contact, error)
	List(status string, limit, offset int) ([]model.Contact, int, error)
	UpdateStatus(id, status string, adminNotes *string) (*model.Contact, error)
	Delete(id string) error
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.Status == "" {
		contact.Status = model.ContactStatusNew
	}
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	query := `
		INSERT INTO contacts (
			id, user_id, first_name, last_name, email, phone_number,
			subject, message, status, admin_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(query,
		contact.ID, contact.UserID, contact.FirstName, contact.LastName,
		contact.Email, contact.PhoneNumber, contact.Subject, contact.Message,
		contact.Status, contact.AdminNotes, contact.CreatedAt, contact.UpdatedAt,
	)
	return err
}

func (r *contactRepository) ByID(id string) (*model.Contact, error) {
	contact := &model.Contact{}
	err := r.db.Get(contact, `SELECT * FROM contacts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	return contact, err
}

func (r *contactRepository) List(status string, limit, offset int) ([]model.Contact, int, error) {
	contacts := []model.Contact{}
	var total int

	if status != "" {
		err := r.db.Get(&total, `SELECT COUNT(*) FROM contacts WHERE status = $1`, status)
		if err != nil {
			return nil, 0, err
		}
		err = r.db.Select(&contacts, `
			SELECT * FROM contacts WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3
		`, status, limit, offset)
		return contacts, total, err
	}

	err := r.db.Get(&total, `SELECT COUNT(*) FROM contacts`)
	if err != nil {
		return nil, 0, err
	}
	err = r.db.Select(&contacts, `
		SELECT * FROM contacts
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	return contacts, total, err
}

func (r *contactRepository) UpdateStatus(id, status string, adminNotes *string) (*model.Contact, error) {
	contact := &model.Contact{}
	query := `
		UPDATE contacts
		SET status = $1,
		    admin_notes = COALESCE($2, admin_notes),
		    updated_at = $3
		WHERE id = $4
		RETURNING *
	`
	err := r.db.Get(contact, query, status, adminNotes, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	return contact, err
}

func (r *contactRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}

	return nil
}
