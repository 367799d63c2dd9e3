package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/valueaim/api/internal/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var ErrOAuthNotConfigured = errors.New("oauth provider not configured")

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthService exchanges a provider authorization code (obtained by
// the frontend) for a verified identity, then hands off to
// AuthService for find-or-create.
type OAuthService struct {
	authService  *AuthService
	googleConfig *oauth2.Config
}

func NewOAuthService(authService *AuthService, googleClientID, googleClientSecret, googleRedirectURL string) *OAuthService {
	s := &OAuthService{authService: authService}

	if googleClientID != "" && googleClientSecret != "" {
		s.googleConfig = &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  googleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	return s
}

// ExchangeGoogle swaps the authorization code for a token, fetches the
// user's profile from Google, and logs them in.
func (s *OAuthService) ExchangeGoogle(ctx context.Context, code string) (*model.User, error) {
	if s.googleConfig == nil {
		return nil, ErrOAuthNotConfigured
	}

	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	client := s.googleConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get google user info: %w", err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}

	user, err := s.authService.LoginOAuth(userInfo.Email, userInfo.Name, userInfo.Picture, userInfo.ID, model.ProviderGoogle)
	if err != nil {
		return nil, err
	}

	slog.Info("user authenticated via google oauth", "user_id", user.ID, "email", user.Email)
	return user, nil
}
