package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// StoryHandler exposes user stories, reactions, and search.
type StoryHandler struct {
	stories *service.StoryService
	logger  *slog.Logger
}

func NewStoryHandler(stories *service.StoryService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{stories: stories, logger: logger}
}

// HandleList returns all stories, newest first.
//
// HTTP: GET /api/stories (RequireAuth)
func (h *StoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	stories, err := h.stories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

// HandleCreate posts a story.
//
// HTTP: POST /api/stories (RequireAuth)
func (h *StoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	story, err := h.stories.Create(r.Context(), identity.UserID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, story)
}

// HandleSearch returns stories whose content contains the query.
//
// HTTP: GET /api/stories/search?q=<term> (RequireAuth)
func (h *StoryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	stories, err := h.stories.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

// HandleReact records that the caller liked a story. A second reaction on
// the same story comes back 400 with "You already reacted to this story."
//
// HTTP: POST /api/stories/{id}/react (RequireAuth)
func (h *StoryHandler) HandleReact(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	reaction, err := h.stories.React(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reaction)
}

// HandleDelete removes a story.
//
// HTTP: DELETE /api/stories/{id} (RequireAdmin)
func (h *StoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.stories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
