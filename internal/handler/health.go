package handler

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

type HealthHandler struct {
	db      *sqlx.DB
	started time.Time
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	err := h.db.PingContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, Envelope{
			Success: false,
			Message: "Database unavailable",
		})
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"status": "OK",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
