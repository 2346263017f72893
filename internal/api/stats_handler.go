package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghlaw/taskdesk/internal/api/shared"
	"github.com/ghlaw/taskdesk/internal/store"
)

// StatsHandler serves aggregate task statistics.
type StatsHandler struct {
	statsStore store.StatsStore
	logger     *slog.Logger
}

// NewStatsHandler creates a new StatsHandler with the given dependencies.
func NewStatsHandler(statsStore store.StatsStore, log *slog.Logger) *StatsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &StatsHandler{
		statsStore: statsStore,
		logger:     log.With(slog.String("component", "stats_handler")),
	}
}

// Overall handles GET /api/stats.
func (h *StatsHandler) Overall(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsStore.CountByStatus(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// ByAssignee handles GET /api/stats/user/{name}.
// An assignee with no tasks yields zero counts, not a 404.
func (h *StatsHandler) ByAssignee(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Assignee name is required")
		return
	}

	stats, err := h.statsStore.CountByAssignee(r.Context(), name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
