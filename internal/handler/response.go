package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire format every endpoint speaks:
// {success, message, data?}. Internal error detail never crosses this
// boundary.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`

	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

func writeList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

func writePaginated(w http.ResponseWriter, data any, count, page, limit int) {
	totalPages := 1
	if limit > 0 && count > 0 {
		totalPages = (count + limit - 1) / limit
	}
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Count:   &count,
		Data:    data,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
