package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/valueaim/api/internal/ctxkeys"
	"github.com/valueaim/api/internal/service"
	"github.com/valueaim/api/internal/validation"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	writeData(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Picture *string `json:"picture"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, req.Name, req.Email, req.Picture)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "Please provide a valid email")
		case errors.Is(err, service.ErrEmailAlreadyExists):
			writeError(w, http.StatusBadRequest, "Email is already in use")
		default:
			slog.Error("failed to update profile", "error", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeData(w, http.StatusOK, updated)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.userService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, service.ErrOAuthAccount):
			writeError(w, http.StatusBadRequest, "This account uses a social login provider")
		case errors.Is(err, validation.ErrPasswordTooShort),
			errors.Is(err, validation.ErrPasswordTooLong),
			errors.Is(err, validation.ErrPasswordTooCommon):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to change password", "error", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Password updated successfully")
}

type updatePlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

func (h *UserHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updatePlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.userService.UpdatePlan(user.ID, req.Plan)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlan) {
			writeError(w, http.StatusBadRequest, "Invalid plan type")
			return
		}
		slog.Error("failed to update plan", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeData(w, http.StatusOK, updated)
}
