package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"time"

	"github.com/go-chi/chi/v5"
	"github.com/valueaim/api/internal/ctxkeys"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/service"
)

type SuggestionHandler struct {
	suggestionService *service.SuggestionService
	maxAttachmentSize int64
}

func NewSuggestionHandler(suggestionService *service.SuggestionService, maxAttachmentSize int64) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		maxAttachmentSize: maxAttachmentSize,
	}
}

// suggestionPayload wraps a suggestion with its resolved attachment
// URL so clients never see raw storage keys alone.
type suggestionPayload struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Suggestion     *string `json:"suggestion"`
	AttachmentName *string `json:"attachmentName"`
	AttachmentSize *int64  `json:"attachmentSize"`
	AttachmentURL  string  `json:"attachmentUrl,omitempty"`
	Status         string  `json:"status"`
	AdminNotes     *string `json:"adminNotes"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func (h *SuggestionHandler) payload(s *model.Suggestion) *suggestionPayload {
	return &suggestionPayload{
		ID:             s.ID,
		UserID:         s.UserID,
		Suggestion:     s.Suggestion,
		AttachmentName: s.AttachmentName,
		AttachmentSize: s.AttachmentSize,
		AttachmentURL:  h.suggestionService.AttachmentURL(s),
		Status:         s.Status,
		AdminNotes:     s.AdminNotes,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}

// Submit accepts multipart form data: a "suggestion" text field and an
// optional "attachment" file. At least one must be present.
func (h *SuggestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAttachmentSize)
	err := r.ParseMultipartForm(h.maxAttachmentSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "File too large. Maximum size is 20MB.")
		return
	}

	text := r.FormValue("suggestion")

	var attachment *service.Attachment
	file, header, err := r.FormFile("attachment")
	if err == nil {
		defer file.Close()
		if header.Size > h.maxAttachmentSize {
			writeError(w, http.StatusBadRequest, "File too large. Maximum size is 20MB.")
			return
		}
		attachment = &service.Attachment{
			Name: header.Filename,
			Size: header.Size,
			File: file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, "Invalid attachment")
		return
	}

	suggestion, err := h.suggestionService.Submit(r.Context(), user.ID, text, attachment)
	if err != nil {
		if errors.Is(err, service.ErrSuggestionEmpty) {
			writeError(w, http.StatusBadRequest, "Please provide either a suggestion text or attach a file")
			return
		}
		slog.Error("failed to submit suggestion", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Thank you for your suggestion!",
		Data:    h.payload(suggestion),
	})
}

func (h *SuggestionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	suggestions, err := h.suggestionService.ListForUser(user.ID)
	if err != nil {
		slog.Error("failed to list suggestions", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	payloads := make([]*suggestionPayload, 0, len(suggestions))
	for i := range suggestions {
		payloads = append(payloads, h.payload(&suggestions[i]))
	}

	writeList(w, payloads, len(payloads))
}

func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := chi.URLParam(r, "id")

	suggestion, err := h.suggestionService.Get(user, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSuggestionNotFound):
			writeError(w, http.StatusNotFound, "Suggestion not found")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Not authorized to access this suggestion")
		default:
			slog.Error("failed to load suggestion", "error", err, "suggestion_id", id)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeData(w, http.StatusOK, h.payload(suggestion))
}

func (h *SuggestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := chi.URLParam(r, "id")

	err := h.suggestionService.Delete(r.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSuggestionNotFound):
			writeError(w, http.StatusNotFound, "Suggestion not found")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Not authorized to access this suggestion")
		default:
			slog.Error("failed to delete suggestion", "error", err, "suggestion_id", id)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Suggestion deleted successfully")
}

// ListAll returns every suggestion for admins, filtered and paginated.
func (h *SuggestionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	suggestions, total, err := h.suggestionService.ListAll(status, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		slog.Error("failed to list suggestions", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	payloads := make([]*suggestionPayload, 0, len(suggestions))
	for i := range suggestions {
		payloads = append(payloads, h.payload(&suggestions[i]))
	}

	writePaginated(w, payloads, total, page, limit)
}

type updateSuggestionStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

func (h *SuggestionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateSuggestionStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	suggestion, err := h.suggestionService.UpdateStatus(id, req.Status, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, repository.ErrSuggestionNotFound):
			writeError(w, http.StatusNotFound, "Suggestion not found")
		default:
			slog.Error("failed to update suggestion status", "error", err, "suggestion_id", id)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeData(w, http.StatusOK, h.payload(suggestion))
}
