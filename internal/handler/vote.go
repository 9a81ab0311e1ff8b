package handler

import (
	"log/slog"
	"net/http"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// VoteHandler exposes vote casting, the current tally, and the live results
// stream.
type VoteHandler struct {
	votes  *service.VoteService
	logger *slog.Logger
}

func NewVoteHandler(votes *service.VoteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{votes: votes, logger: logger}
}

// HandleCast records the caller's vote.
//
// HTTP: POST /api/vote (RequireAuth)
// BODY: {"runner": "<id>"}
//
// 201 on success, 400 {"error":"conflict","message":"You have already
// voted."} on a duplicate, 404 on an unknown runner.
func (h *VoteHandler) HandleCast(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req struct {
		Runner string `json:"runner"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vote, err := h.votes.Cast(r.Context(), identity.UserID, req.Runner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

// HandleTally returns the current vote counts grouped by runner ID.
//
// HTTP: GET /api/vote/results
func (h *VoteHandler) HandleTally(w http.ResponseWriter, r *http.Request) {
	tally, err := h.votes.Tally(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

// HandleStream streams live tally snapshots over Server-Sent Events.
//
// HTTP: GET /api/vote/stream
//
// Each frame is `data: <json>\n\n`, flushed immediately. The first frame is
// the current tally; after that a frame goes out only when the tally
// changes. The stream ends when the client disconnects, which cancels the
// request context and closes the subscription.
func (h *VoteHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	snapshots, err := h.votes.Subscribe(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("results stream opened", slog.String("remote", r.RemoteAddr))

	for snapshot := range snapshots {
		if _, err := w.Write([]byte("data: ")); err != nil {
			break
		}
		if _, err := w.Write(snapshot); err != nil {
			break
		}
		if _, err := w.Write([]byte("\n\n")); err != nil {
			break
		}
		flusher.Flush()
	}

	h.logger.Info("results stream closed", slog.String("remote", r.RemoteAddr))
}
