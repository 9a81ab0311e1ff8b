package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// MileageHandler exposes the mileage planner. The routes sit behind
// OptionalAuth: anonymous planning is allowed, and anonymous results form
// their own shared history.
type MileageHandler struct {
	mileage *service.MileageService
	logger  *slog.Logger
}

func NewMileageHandler(mileage *service.MileageService, logger *slog.Logger) *MileageHandler {
	return &MileageHandler{mileage: mileage, logger: logger}
}

// callerID returns the authenticated user ID, or "" for anonymous callers.
func callerID(r *http.Request) string {
	if identity, ok := auth.IdentityFromContext(r.Context()); ok {
		return identity.UserID
	}
	return ""
}

// HandlePlan computes a progression and returns it with the caller's
// history.
//
// HTTP: POST /api/mileage
// BODY: {"age": "...", "injury": "yes|no", "desiredMileage": N}
func (h *MileageHandler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Age            string `json:"age"`
		Injury         string `json:"injury"`
		DesiredMileage int    `json:"desiredMileage"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	latest, history, err := h.mileage.Plan(r.Context(), callerID(r), req.Age, req.Injury, req.DesiredMileage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"latest":  latest,
		"history": history,
	})
}

// HandleLatest returns the caller's most recent result, or an explicit
// no-result message when there is none yet.
//
// HTTP: GET /api/mileage
func (h *MileageHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.mileage.Latest(r.Context(), callerID(r))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "No mileage results yet"})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

// HandleHistory returns the caller's results with optional filtering and
// sorting.
//
// HTTP: GET /api/mileage/history?age=<bracket>&sort=asc|desc
func (h *MileageHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	history, err := h.mileage.History(r.Context(), callerID(r), q.Get("age"), q.Get("sort"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
