package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
)

var ErrInvalidEmployeeRange = errors.New("invalid employees range")

type CompanyService struct {
	companyRepository repository.CompanyRepository
	userRepository    repository.UserRepository
}

func NewCompanyService(companyRepository repository.CompanyRepository, userRepository repository.UserRepository) *CompanyService {
	return &CompanyService{
		companyRepository: companyRepository,
		userRepository:    userRepository,
	}
}

func (s *CompanyService) ByUserID(userID string) (*model.Company, error) {
	return s.companyRepository.ByUserID(userID)
}

// Save creates or updates the caller's single company profile. First
// creation flips the user's company onboarding flag.
func (s *CompanyService) Save(userID string, company *model.Company) (*model.Company, error) {
	if !model.ValidEmployeeRange(company.Employees) {
		return nil, ErrInvalidEmployeeRange
	}
	company.UserID = userID

	existing, err := s.companyRepository.ByUserID(userID)
	if err != nil && !errors.Is(err, repository.ErrCompanyNotFound) {
		return nil, fmt.Errorf("failed to lookup company: %w", err)
	}

	if existing != nil {
		company.ID = existing.ID
		company.CreatedAt = existing.CreatedAt
		err = s.companyRepository.Update(company)
		if err != nil {
			return nil, fmt.Errorf("failed to update company: %w", err)
		}
		return s.companyRepository.ByUserID(userID)
	}

	err = s.companyRepository.Create(company)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	err = s.setCompanyFlag(userID, true)
	if err != nil {
		slog.Warn("failed to update company onboarding flag", "error", err, "user_id", userID)
	}

	return company, nil
}

// Delete removes the caller's company and clears the onboarding flag.
func (s *CompanyService) Delete(userID string) error {
	err := s.companyRepository.DeleteByUserID(userID)
	if err != nil {
		return err
	}

	err = s.setCompanyFlag(userID, false)
	if err != nil {
		slog.Warn("failed to clear company onboarding flag", "error", err, "user_id", userID)
	}

	return nil
}

func (s *CompanyService) setCompanyFlag(userID string, done bool) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return err
	}
	user.CompanyDetailsCompleted = done
	if !done {
		user.HasCompletedOnboarding = false
	}
	return s.userRepository.Update(user)
}
