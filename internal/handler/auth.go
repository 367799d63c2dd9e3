package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/valueaim/api/internal/ctxkeys"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/service"
	"github.com/valueaim/api/internal/validation"
)

type AuthHandler struct {
	authService  *service.AuthService
	oauthService *service.OAuthService
}

func NewAuthHandler(authService *service.AuthService, oauthService *service.OAuthService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
	}
}

// authPayload is the user shape returned by register/login, with the
// bearer token folded in.
type authPayload struct {
	ID                      string             `json:"_id"`
	Name                    *string            `json:"name"`
	Email                   string             `json:"email"`
	Provider                model.AuthProvider `json:"provider"`
	Picture                 *string            `json:"picture"`
	Role                    string             `json:"role"`
	Plan                    string             `json:"plan"`
	IsFirstLogin            bool               `json:"isFirstLogin"`
	HasCompletedOnboarding  bool               `json:"hasCompletedOnboarding"`
	CompanyDetailsCompleted bool               `json:"companyDetailsCompleted"`
	ServiceDetailsCompleted bool               `json:"serviceDetailsCompleted"`
	Token                   string             `json:"token"`
}

func (h *AuthHandler) payload(user *model.User) (*authPayload, error) {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	return &authPayload{
		ID:                      user.ID,
		Name:                    user.Name,
		Email:                   user.Email,
		Provider:                user.Provider,
		Picture:                 user.Picture,
		Role:                    user.Role,
		Plan:                    user.Plan,
		IsFirstLogin:            user.IsFirstLogin,
		HasCompletedOnboarding:  user.HasCompletedOnboarding,
		CompanyDetailsCompleted: user.CompanyDetailsCompleted,
		ServiceDetailsCompleted: user.ServiceDetailsCompleted,
		Token:                   token,
	}, nil
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"omitempty,min=6"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Picture    string `json:"picture"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider := model.AuthProvider(req.Provider)
	if provider == "" {
		provider = model.ProviderEmail
	}

	user, err := h.authService.Register(service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Provider:   provider,
		ProviderID: req.ProviderID,
		Picture:    req.Picture,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			writeError(w, http.StatusBadRequest, "User already exists with this email")
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("registration failed", "error", err, "email", req.Email)
			writeError(w, http.StatusInternalServerError, "Server error during registration")
		}
		return
	}

	payload, err := h.payload(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	writeData(w, http.StatusCreated, payload)
}

type loginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
}

// Login handles both email/password and OAuth pass-through logins.
// For OAuth, the frontend has already completed the provider flow and
// sends the verified identity; unknown emails get an account created.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user *model.User
	var err error

	provider := model.AuthProvider(req.Provider)
	if provider != "" && provider != model.ProviderEmail {
		user, err = h.authService.LoginOAuth(req.Email, req.Name, req.Picture, req.ProviderID, provider)
	} else {
		user, err = h.authService.Login(req.Email, req.Password)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, service.ErrOAuthAccount):
			writeError(w, http.StatusBadRequest, "This account uses a social login provider")
		case errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("login failed", "error", err, "email", req.Email)
			writeError(w, http.StatusInternalServerError, "Server error during login")
		}
		return
	}

	payload, err := h.payload(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "provider", user.Provider)
	writeData(w, http.StatusOK, payload)
}

type googleExchangeRequest struct {
	Code string `json:"code" validate:"required"`
}

// GoogleExchange completes the server-side OAuth flow: the frontend
// sends the authorization code, we exchange it with Google directly.
func (h *AuthHandler) GoogleExchange(w http.ResponseWriter, r *http.Request) {
	var req googleExchangeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.oauthService.ExchangeGoogle(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrOAuthNotConfigured) {
			writeError(w, http.StatusBadRequest, "Google login is not available")
			return
		}
		slog.Error("google oauth exchange failed", "error", err)
		writeError(w, http.StatusUnauthorized, "OAuth authentication failed. Please try again.")
		return
	}

	payload, err := h.payload(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	writeData(w, http.StatusOK, payload)
}

// Me returns the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	writeData(w, http.StatusOK, user)
}

type onboardingRequest struct {
	CompanyDetailsCompleted *bool `json:"companyDetailsCompleted"`
	ServiceDetailsCompleted *bool `json:"serviceDetailsCompleted"`
}

func (h *AuthHandler) UpdateOnboarding(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req onboardingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.authService.UpdateOnboarding(user.ID, req.CompanyDetailsCompleted, req.ServiceDetailsCompleted)
	if err != nil {
		slog.Error("failed to update onboarding", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeData(w, http.StatusOK, updated)
}
