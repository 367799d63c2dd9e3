package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
)

// ErrNotOwner is returned when a caller touches an offering that
// belongs to someone else.
var ErrNotOwner = errors.New("not authorized to access this resource")

type OfferingService struct {
	offeringRepository repository.OfferingRepository
	userRepository     repository.UserRepository
}

func NewOfferingService(offeringRepository repository.OfferingRepository, userRepository repository.UserRepository) *OfferingService {
	return &OfferingService{
		offeringRepository: offeringRepository,
		userRepository:     userRepository,
	}
}

func (s *OfferingService) Create(userID string, offering *model.Offering) (*model.Offering, error) {
	offering.UserID = userID

	err := s.offeringRepository.Create(offering)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	err = s.setServiceFlag(userID)
	if err != nil {
		slog.Warn("failed to update service onboarding flag", "error", err, "user_id", userID)
	}

	return offering, nil
}

func (s *OfferingService) ListForUser(userID string) ([]model.Offering, error) {
	return s.offeringRepository.ByUserID(userID)
}

// Get returns the offering after checking ownership.
func (s *OfferingService) Get(userID, id string) (*model.Offering, error) {
	offering, err := s.offeringRepository.ByID(id)
	if err != nil {
		return nil, err
	}
	if offering.UserID != userID {
		return nil, ErrNotOwner
	}
	return offering, nil
}

func (s *OfferingService) Update(userID, id string, updated *model.Offering) (*model.Offering, error) {
	offering, err := s.offeringRepository.ByID(id)
	if err != nil {
		return nil, err
	}
	if offering.UserID != userID {
		return nil, ErrNotOwner
	}

	updated.ID = offering.ID
	updated.UserID = offering.UserID
	updated.CreatedAt = offering.CreatedAt
	if updated.OfferStatus == "" {
		updated.OfferStatus = offering.OfferStatus
	}

	err = s.offeringRepository.Update(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return s.offeringRepository.ByID(id)
}

func (s *OfferingService) Delete(userID, id string) error {
	offering, err := s.offeringRepository.ByID(id)
	if err != nil {
		return err
	}
	if offering.UserID != userID {
		return ErrNotOwner
	}

	return s.offeringRepository.Delete(id)
}

// ReplaceAll swaps the caller's whole offering set in one transaction
// (the bulk onboarding flow).
func (s *OfferingService) ReplaceAll(userID string, offerings []model.Offering) ([]model.Offering, error) {
	err := s.offeringRepository.ReplaceAllForUser(userID, offerings)
	if err != nil {
		return nil, fmt.Errorf("failed to replace services: %w", err)
	}

	err = s.setServiceFlag(userID)
	if err != nil {
		slog.Warn("failed to update service onboarding flag", "error", err, "user_id", userID)
	}

	return s.offeringRepository.ByUserID(userID)
}

func (s *OfferingService) setServiceFlag(userID string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return err
	}
	user.ServiceDetailsCompleted = true
	return s.userRepository.Update(user)
}
