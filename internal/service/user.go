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
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrInvalidPlan   = errors.New("invalid plan type")
)

type UserService struct {
	userRepository repository.UserRepository
	authService    *AuthService
}

func NewUserService(userRepository repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{
		userRepository: userRepository,
		authService:    authService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// UpdateProfile applies the optional name/email/picture fields.
func (s *UserService) UpdateProfile(userID string, name, email, picture *string) (*model.User, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != "" {
		user.Name = name
	}
	if email != nil && *email != "" {
		normalized := strings.TrimSpace(strings.ToLower(*email))
		if err := validation.ValidateEmail(normalized); err != nil {
			return nil, ErrInvalidEmail
		}
		user.Email = normalized
	}
	if picture != nil && *picture != "" {
		user.Picture = picture
	}

	err = s.userRepository.Update(user)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the current password and replaces it.
// OAuth accounts have no password to change.
func (s *UserService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return err
	}

	if !user.HasPassword() {
		return ErrOAuthAccount
	}

	err = s.authService.ComparePassword(currentPassword, *user.PasswordHash)
	if err != nil {
		return ErrWrongPassword
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = &hash
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

// UpdatePlan sets the subscription tag. Billing is handled elsewhere;
// the plan is a pass-through label here.
func (s *UserService) UpdatePlan(userID, plan string) (*model.User, error) {
	if !model.ValidPlan(plan) {
		return nil, ErrInvalidPlan
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	user.Plan = plan
	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	slog.Info("plan updated", "user_id", userID, "plan", plan)
	return user, nil
}
