package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/valueaim/api/internal/ctxkeys"
	"github.com/valueaim/api/internal/model"
	"github.com/valueaim/api/internal/repository"
	"github.com/valueaim/api/internal/service"
)

type CompanyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	company, err := h.companyService.ByUserID(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			writeError(w, http.StatusNotFound, "Company details not found")
			return
		}
		slog.Error("failed to load company", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeData(w, http.StatusOK, company)
}

type companyRequest struct {
	CompanyName *string `json:"companyName"`
	Industry    *string `json:"industry"`
	Website     *string `json:"website"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Employees   string  `json:"employees"`
	Description *string `json:"description"`
}

// Save handles both POST and PUT: one company per user, created on
// first write and updated after.
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req companyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	company, err := h.companyService.Save(user.ID, &model.Company{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Website:     req.Website,
		Country:     req.Country,
		City:        req.City,
		Employees:   req.Employees,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmployeeRange) {
			writeError(w, http.StatusBadRequest, "Invalid employees range")
			return
		}
		slog.Error("failed to save company", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeData(w, http.StatusOK, company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.companyService.Delete(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			writeError(w, http.StatusNotFound, "Company details not found")
			return
		}
		slog.Error("failed to delete company", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeMessage(w, http.StatusOK, "Company details deleted successfully")
}
