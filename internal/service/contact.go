package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/validation"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrMissingFields = errors.New("please provide all required fields")
)

type ContactInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Subject     string
	Message     string
}

type ContactService struct {
	contactRepository repository.ContactRepository
}

func NewContactService(contactRepository repository.ContactRepository) *ContactService {
	return &ContactService{contactRepository: contactRepository}
}

// Submit stores a contact-form message. userID is optional: it is set
// when the sender happened to present a valid bearer token.
func (s *ContactService) Submit(in ContactInput, userID *string) (*model.Contact, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" ||
		in.PhoneNumber == "" || in.Subject == "" || in.Message == "" {
		return nil, ErrMissingFields
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	contact := &model.Contact{
		UserID:      userID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Subject:     in.Subject,
		Message:     in.Message,
		Status:      model.ContactStatusNew,
	}

	err := s.contactRepository.Create(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	slog.Info("contact message received", "contact_id", contact.ID, "subject", contact.Subject)
	return contact, nil
}

func (s *ContactService) List(status string, page, limit int) ([]model.Contact, int, error) {
	if status != "" && !model.ValidContactStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.contactRepository.List(status, limit, (page-1)*limit)
}

func (s *ContactService) Get(id string) (*model.Contact, error) {
	return s.contactRepository.ByID(id)
}

func (s *ContactService) UpdateStatus(id, status string, adminNotes *string) (*model.Contact, error) {
	if !model.ValidContactStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.contactRepository.UpdateStatus(id, status, adminNotes)
}

func (s *ContactService) Delete(id string) error {
	return s.contactRepository.Delete(id)
}
