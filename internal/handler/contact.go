package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/valueaim/api/internal/ctxkeys"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type contactRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// Submit accepts the public contact form. A bearer token is optional;
// when present the message is linked to the account.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var userID *string
	if user := ctxkeys.User(r.Context()); user != nil {
		userID = &user.ID
	}

	contact, err := h.contactService.Submit(service.ContactInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Subject:     req.Subject,
		Message:     req.Message,
	}, userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, "Please provide a valid email")
			return
		}
		if errors.Is(err, service.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Please provide all required fields")
			return
		}
		slog.Error("failed to submit contact", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Your message has been received. We will get back to you soon!",
		Data:    contact,
	})
}

// List returns contact submissions for admins, filtered by status and
// paginated.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	contacts, total, err := h.contactService.List(status, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		slog.Error("failed to list contacts", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writePaginated(w, contacts, total, page, limit)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	contact, err := h.contactService.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			writeError(w, http.StatusNotFound, "Contact submission not found")
			return
		}
		slog.Error("failed to load contact", "error", err, "contact_id", id)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeData(w, http.StatusOK, contact)
}

type updateContactStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateContactStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	contact, err := h.contactService.UpdateStatus(id, req.Status, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, repository.ErrContactNotFound):
			writeError(w, http.StatusNotFound, "Contact submission not found")
		default:
			slog.Error("failed to update contact status", "error", err, "contact_id", id)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeData(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.contactService.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			writeError(w, http.StatusNotFound, "Contact submission not found")
			return
		}
		slog.Error("failed to delete contact", "error", err, "contact_id", id)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeMessage(w, http.StatusOK, "Contact submission deleted successfully")
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
