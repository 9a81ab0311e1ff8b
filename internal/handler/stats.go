package handler

import (
	"log/slog"
	"net/http"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// StatsHandler exposes the site-wide stats snapshot.
type StatsHandler struct {
	stats  *service.StatsService
	logger *slog.Logger
}

func NewStatsHandler(stats *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

// HandleGet computes and returns the current aggregates.
//
// HTTP: GET /api/stats
func (h *StatsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
