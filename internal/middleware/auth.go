package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/valueaim/api/internal/ctxkeys"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/service"
)

// bearerToken pulls the token out of "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

// RequireAuth resolves the bearer token to a live user and attaches it
// to the request context. Missing or invalid tokens are 401; a valid
// token whose subject no longer exists is 404. Clients rely on that
// distinction, unlike OTP verification which collapses its failures.
func RequireAuth(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			user, err := userService.ByID(userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeAuthError(w, http.StatusNotFound, "User not found")
					return
				}
				writeAuthError(w, http.StatusInternalServerError, "Server error")
				return
			}

			// The resolved identity never carries the credential hash
			user.PasswordHash = nil

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the user when a valid token is present and
// silently continues without one otherwise. Used by the public
// contact form to attribute submissions from logged-in senders.
func OptionalAuth(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user.PasswordHash = nil
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		})
	}
}

// RequireRole allows only users whose role is in the given set. Must
// run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := ctxkeys.User(r.Context())
			if user == nil {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeAuthError(w, http.StatusForbidden,
				fmt.Sprintf("User role %s is not authorized to access this route", user.Role))
		})
	}
}
