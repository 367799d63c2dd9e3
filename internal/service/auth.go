package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("user already exists with this email")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordRequired   = errors.New("password is required for email accounts")
	ErrOAuthAccount       = errors.New("this account uses a social login provider")
	ErrInvalidToken       = errors.New("invalid token")
)

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Provider   model.AuthProvider
	ProviderID string
	Picture    string
}

// AuthService owns registration, login, and the stateless bearer
// token. The signing secret and expiry come in through the
// constructor, never from ambient globals.
type AuthService struct {
	userRepository repository.UserRepository
	jwtSecret      string
	jwtExpiry      time.Duration
}

func NewAuthService(userRepository repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtSecret:      jwtSecret,
		jwtExpiry:      jwtExpiry,
	}
}

// Register creates a new account. Email accounts must carry a
// password; OAuth accounts store the provider identity instead.
func (s *AuthService) Register(in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if in.Provider == "" {
		in.Provider = model.ProviderEmail
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Provider:     in.Provider,
		Role:         model.RoleUser,
		Plan:         model.PlanFree,
		IsFirstLogin: true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if in.Name != "" {
		user.Name = &in.Name
	}
	if in.Picture != "" {
		user.Picture = &in.Picture
	}
	if in.ProviderID != "" {
		user.ProviderID = &in.ProviderID
	}

	if in.Provider == model.ProviderEmail {
		if in.Password == "" {
			return nil, ErrPasswordRequired
		}
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, err
		}
		hash, err := s.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
	}

	err := s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "provider", user.Provider)
	return user, nil
}

// Login authenticates an email/password account.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, ErrOAuthAccount
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// LoginOAuth finds or creates an account for a provider-verified
// identity. The provider has already proven control of the email.
func (s *AuthService) LoginOAuth(email, name, picture, providerID string, provider model.AuthProvider) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to lookup user: %w", err)
	}

	return s.Register(RegisterInput{
		Name:       name,
		Email:      email,
		Provider:   provider,
		ProviderID: providerID,
		Picture:    picture,
	})
}

// UpdateOnboarding applies the onboarding step flags. When both are
// complete the account graduates out of first-login.
func (s *AuthService) UpdateOnboarding(userID string, companyDone, serviceDone *bool) (*model.User, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	if companyDone != nil {
		user.CompanyDetailsCompleted = *companyDone
	}
	if serviceDone != nil {
		user.ServiceDetailsCompleted = *serviceDone
	}
	if user.CompanyDetailsCompleted && user.ServiceDetailsCompleted {
		user.HasCompletedOnboarding = true
		user.IsFirstLogin = false
	}

	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update onboarding: %w", err)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateJWT mints the stateless bearer token: signed claims with the
// user id and a fixed expiry, no server-side session.
func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     now.Add(s.jwtExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// VerifyJWT validates signature and expiry and returns the claims.
func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
