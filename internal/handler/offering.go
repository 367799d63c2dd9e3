package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/valueaim/api/internal/ctxkeys"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/service"
)

type OfferingHandler struct {
	offeringService *service.OfferingService
}

func NewOfferingHandler(offeringService *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringService: offeringService}
}

type offeringRequest struct {
	Interests          []string `json:"interests"`
	Keywords           []string `json:"keywords"`
	AdjacencyExpansion []string `json:"adjacencyExpansion"`
	TargetIndustry     []string `json:"targetIndustry"`
	FunctionType       []string `json:"functionType"`
	TargetSegment      []string `json:"targetSegment"`
	OfferStatus        string   `json:"offerStatus"`
	Description        *string  `json:"description"`
}

func (req *offeringRequest) toModel() *model.Offering {
	status := req.OfferStatus
	if status == "" {
		status = model.OfferStatusActive
	}
	return &model.Offering{
		Interests:          req.Interests,
		Keywords:           req.Keywords,
		AdjacencyExpansion: req.AdjacencyExpansion,
		TargetIndustry:     req.TargetIndustry,
		FunctionType:       req.FunctionType,
		TargetSegment:      req.TargetSegment,
		OfferStatus:        status,
		Description:        req.Description,
	}
}

func (h *OfferingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req offeringRequest
	if !decodeBody(w, r, &req) {
		return
	}

	offering, err := h.offeringService.Create(user.ID, req.toModel())
	if err != nil {
		slog.Error("failed to create service", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeData(w, http.StatusCreated, offering)
}

func (h *OfferingHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	offerings, err := h.offeringService.ListForUser(user.ID)
	if err != nil {
		slog.Error("failed to list services", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeList(w, offerings, len(offerings))
}

func (h *OfferingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := chi.URLParam(r, "id")

	offering, err := h.offeringService.Get(user.ID, id)
	if err != nil {
		h.writeOfferingError(w, err, user.ID, id)
		return
	}

	writeData(w, http.StatusOK, offering)
}

func (h *OfferingHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := chi.URLParam(r, "id")

	var req offeringRequest
	if !decodeBody(w, r, &req) {
		return
	}

	offering, err := h.offeringService.Update(user.ID, id, req.toModel())
	if err != nil {
		h.writeOfferingError(w, err, user.ID, id)
		return
	}

	writeData(w, http.StatusOK, offering)
}

func (h *OfferingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := chi.URLParam(r, "id")

	err := h.offeringService.Delete(user.ID, id)
	if err != nil {
		h.writeOfferingError(w, err, user.ID, id)
		return
	}

	writeMessage(w, http.StatusOK, "Service deleted successfully")
}

type bulkOfferingsRequest struct {
	Services []offeringRequest `json:"services"`
}

// BulkReplace swaps the caller's entire offering set, the shape the
// onboarding wizard submits.
func (h *OfferingHandler) BulkReplace(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req bulkOfferingsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Services) == 0 {
		writeError(w, http.StatusBadRequest, "Please provide at least one service")
		return
	}

	offerings := make([]model.Offering, 0, len(req.Services))
	for i := range req.Services {
		offerings = append(offerings, *req.Services[i].toModel())
	}

	saved, err := h.offeringService.ReplaceAll(user.ID, offerings)
	if err != nil {
		slog.Error("failed to replace services", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeList(w, saved, len(saved))
}

func (h *OfferingHandler) writeOfferingError(w http.ResponseWriter, err error, userID, id string) {
	switch {
	case errors.Is(err, repository.ErrOfferingNotFound):
		writeError(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Not authorized to access this service")
	default:
		slog.Error("service operation failed", "error", err, "user_id", userID, "service_id", id)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
