package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// TimelineHandler exposes the running-history timeline. Reading is public,
// authoring routes sit behind RequireAdmin.
type TimelineHandler struct {
	timeline *service.TimelineService
	logger   *slog.Logger
}

func NewTimelineHandler(timeline *service.TimelineService, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{timeline: timeline, logger: logger}
}

type timelineEventRequest struct {
	Year        string `json:"year"`
	Description string `json:"description"`
	Position    int    `json:"order"`
}

type timelineReferenceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}

// HandleList returns all events ordered by position with nested references.
//
// HTTP: GET /api/timeline
func (h *TimelineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.timeline.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// HandleCreateEvent adds a timeline entry.
//
// HTTP: POST /api/timeline (RequireAdmin)
func (h *TimelineHandler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req timelineEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.timeline.CreateEvent(r.Context(), req.Year, req.Description, req.Position)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// HandleGetEvent returns one event with its references.
//
// HTTP: GET /api/timeline/{id}
func (h *TimelineHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.timeline.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// HandleUpdateEvent replaces an event's fields.
//
// HTTP: PUT /api/timeline/{id} (RequireAdmin)
func (h *TimelineHandler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req timelineEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.timeline.UpdateEvent(r.Context(), chi.URLParam(r, "id"),
		req.Year, req.Description, req.Position)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// HandleDeleteEvent removes an event and its references.
//
// HTTP: DELETE /api/timeline/{id} (RequireAdmin)
func (h *TimelineHandler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.timeline.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListReferences returns one event's references.
//
// HTTP: GET /api/events/{id}/references
func (h *TimelineHandler) HandleListReferences(w http.ResponseWriter, r *http.Request) {
	refs, err := h.timeline.ListReferences(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// HandleCreateReference attaches a reference to an event.
//
// HTTP: POST /api/events/{id}/references (RequireAdmin)
func (h *TimelineHandler) HandleCreateReference(w http.ResponseWriter, r *http.Request) {
	var req timelineReferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ref, err := h.timeline.CreateReference(r.Context(), chi.URLParam(r, "id"),
		req.Title, req.Description, req.Question, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// HandleUpdateReference replaces a reference's fields.
//
// HTTP: PUT /api/references/{id} (RequireAdmin)
func (h *TimelineHandler) HandleUpdateReference(w http.ResponseWriter, r *http.Request) {
	var req timelineReferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ref, err := h.timeline.UpdateReference(r.Context(), chi.URLParam(r, "id"),
		req.Title, req.Description, req.Question, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

// HandleDeleteReference removes one reference.
//
// HTTP: DELETE /api/references/{id} (RequireAdmin)
func (h *TimelineHandler) HandleDeleteReference(w http.ResponseWriter, r *http.Request) {
	if err := h.timeline.DeleteReference(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
