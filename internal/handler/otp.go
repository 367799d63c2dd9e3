package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/service"
)

// otpManager is the slice of OTPService the handler needs; narrowed so
// tests can stub it.
type otpManager interface {
	Issue(identifier string, purpose model.OTPPurpose) (string, error)
	Verify(identifier, code string, purpose model.OTPPurpose) error
}

type otpMailer interface {
	SendOTP(ctx context.Context, to string, kind service.TemplateKind, code string) error
}

type OTPHandler struct {
	otpService   otpManager
	emailService otpMailer
}

func NewOTPHandler(otpService otpManager, emailService otpMailer) *OTPHandler {
	return &OTPHandler{
		otpService:   otpService,
		emailService: emailService,
	}
}

type sendOTPRequest struct {
	Identifier string `json:"identifier"`
	Purpose    string `json:"purpose"`
}

// Send issues a fresh code and delivers it by email in the same
// request. Delivery failure fails the whole call: the client must not
// wait for a code that never left the building.
func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Identifier == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	purpose, err := model.ParseOTPPurpose(req.Purpose)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid purpose")
		return
	}

	code, err := h.otpService.Issue(req.Identifier, purpose)
	if err != nil {
		if errors.Is(err, service.ErrIdentifierRequired) {
			writeError(w, http.StatusBadRequest, "Email is required")
			return
		}
		slog.Error("failed to issue otp", "error", err, "identifier", req.Identifier)
		writeError(w, http.StatusInternalServerError, "Failed to send OTP. Please try again.")
		return
	}

	err = h.emailService.SendOTP(r.Context(), req.Identifier, service.TemplateForPurpose(string(purpose)), code)
	if err != nil {
		slog.Error("failed to deliver otp", "error", err, "identifier", req.Identifier)
		writeError(w, http.StatusInternalServerError, "Failed to send OTP. Please try again.")
		return
	}

	writeMessage(w, http.StatusOK, "OTP sent successfully")
}

type verifyOTPRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
	Purpose    string `json:"purpose"`
}

// Verify consumes a code. Wrong, expired, and already-used codes all
// produce the same generic 400.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Identifier == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	purpose, err := model.ParseOTPPurpose(req.Purpose)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid purpose")
		return
	}

	err = h.otpService.Verify(req.Identifier, req.Code, purpose)
	if err != nil {
		if errors.Is(err, service.ErrCodeInvalid) || errors.Is(err, service.ErrIdentifierRequired) {
			writeError(w, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		slog.Error("failed to verify otp", "error", err, "identifier", req.Identifier)
		writeError(w, http.StatusInternalServerError, "Failed to verify OTP. Please try again.")
		return
	}

	writeMessage(w, http.StatusOK, "OTP verified successfully")
}
