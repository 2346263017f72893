package api

import (
	"database/sql"
	"net/http"

	"github.com/ghlaw/taskdesk/internal/api/shared"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// healthResponse is the liveness probe body.
type healthResponse struct {
	Status string `json:"status"`
}

// readinessResponse is the readiness probe body.
type readinessResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /health. Liveness only: no dependencies are checked.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, healthResponse{Status: "healthy"})
}

// Ready handles GET /ready. Checks storage connectivity.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, readinessResponse{
			Status:   "not_ready",
			Database: "unhealthy",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, readinessResponse{
		Status:   "ready",
		Database: "healthy",
	})
}
