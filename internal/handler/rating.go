package handler

import (
	"log/slog"
	"net/http"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// RatingHandler exposes the per-user website star rating.
type RatingHandler struct {
	ratings *service.RatingService
	logger  *slog.Logger
}

func NewRatingHandler(ratings *service.RatingService, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{ratings: ratings, logger: logger}
}

// HandleGet returns the caller's rating, creating a zero rating on first
// access.
//
// HTTP: GET /api/website-rating (RequireAuth)
func (h *RatingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	rating, err := h.ratings.Get(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

// HandleSet stores the caller's rating.
//
// HTTP: POST /api/website-rating (RequireAuth)
// BODY: {"rating": 0..5}
func (h *RatingHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rating, err := h.ratings.Set(r.Context(), identity.UserID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}
