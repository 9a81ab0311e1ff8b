package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// MemeHandler exposes the meme gallery. Editing and deleting require the
// caller to be the uploader or an admin; the service enforces that.
type MemeHandler struct {
	memes  *service.MemeService
	logger *slog.Logger
}

func NewMemeHandler(memes *service.MemeService, logger *slog.Logger) *MemeHandler {
	return &MemeHandler{memes: memes, logger: logger}
}

type memeRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image"`
	Category string `json:"category"`
}

// HandleList returns all memes, newest first.
//
// HTTP: GET /api/memes (RequireAuth)
func (h *MemeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	memes, err := h.memes.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memes)
}

// HandleGet returns one meme.
//
// HTTP: GET /api/memes/{id} (RequireAuth)
func (h *MemeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	meme, err := h.memes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meme)
}

// HandleCreate uploads a meme (as a URL; image bytes live elsewhere).
//
// HTTP: POST /api/memes (RequireAuth)
func (h *MemeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req memeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	meme, err := h.memes.Create(r.Context(), identity.UserID, req.Title, req.ImageURL, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meme)
}

// HandleUpdate edits a meme, owner or admin only.
//
// HTTP: PUT /api/memes/{id} (RequireAuth)
func (h *MemeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req memeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	meme, err := h.memes.Update(r.Context(), identity.UserID, identity.IsAdmin,
		chi.URLParam(r, "id"), req.Title, req.ImageURL, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meme)
}

// HandleDelete removes a meme, owner or admin only.
//
// HTTP: DELETE /api/memes/{id} (RequireAuth)
func (h *MemeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	if err := h.memes.Delete(r.Context(), identity.UserID, identity.IsAdmin, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
