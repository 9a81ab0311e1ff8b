package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// RunnerHandler exposes the poll candidates: public listing with live vote
// counts, the quiz lineup, and admin CRUD.
type RunnerHandler struct {
	runners *service.RunnerService
	logger  *slog.Logger
}

func NewRunnerHandler(runners *service.RunnerService, logger *slog.Logger) *RunnerHandler {
	return &RunnerHandler{runners: runners, logger: logger}
}

type runnerRequest struct {
	Name         string `json:"name"`
	ImageURL     string `json:"image"`
	Description  string `json:"description"`
	IsQuizRunner bool   `json:"is_quiz_runner"`
	QuizOrder    *int   `json:"quiz_order"`
}

// HandleList returns all runners with their vote counts.
//
// HTTP: GET /api/runners
func (h *RunnerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	runners, err := h.runners.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runners)
}

// HandleListQuiz returns the quiz lineup ordered by quiz position.
//
// HTTP: GET /api/runners/quiz
func (h *RunnerHandler) HandleListQuiz(w http.ResponseWriter, r *http.Request) {
	runners, err := h.runners.ListQuiz(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runners)
}

// HandleGet returns one runner.
//
// HTTP: GET /api/runners/{id}
func (h *RunnerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	runner, err := h.runners.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runner)
}

// HandleCreate adds a runner.
//
// HTTP: POST /api/runners (RequireAuth)
func (h *RunnerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req runnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	runner, err := h.runners.Create(r.Context(), req.Name, req.ImageURL, req.Description, req.IsQuizRunner, req.QuizOrder)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, runner)
}

// HandleUpdate replaces a runner's fields.
//
// HTTP: PUT /api/runners/{id} (RequireAdmin)
func (h *RunnerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req runnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	runner, err := h.runners.Update(r.Context(), chi.URLParam(r, "id"),
		req.Name, req.ImageURL, req.Description, req.IsQuizRunner, req.QuizOrder)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runner)
}

// HandleDelete removes a runner.
//
// HTTP: DELETE /api/runners/{id} (RequireAdmin)
func (h *RunnerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.runners.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
