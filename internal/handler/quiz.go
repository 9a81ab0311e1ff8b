package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// QuizHandler exposes quiz reading, submission grading, and admin authoring.
type QuizHandler struct {
	quizzes *service.QuizService
	logger  *slog.Logger
}

func NewQuizHandler(quizzes *service.QuizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, logger: logger}
}

// HandleList returns all quizzes with nested questions and answers.
//
// HTTP: GET /api/quizzes
func (h *QuizHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

// HandleGet returns one quiz.
//
// HTTP: GET /api/quizzes/{id}
func (h *QuizHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// HandleSubmit grades a submission.
//
// HTTP: POST /api/quizzes/submit
// BODY: {"quiz": "<id>", "answers": ["<answerID>", ...]}
//
// Scored quizzes return {quiz, score, total, passed}; non-scored quizzes
// return {quiz, result: <answers unchanged>}.
func (h *QuizHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quiz    string   `json:"quiz"`
		Answers []string `json:"answers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	submission, err := h.quizzes.Submit(r.Context(), req.Quiz, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}

	if submission.Result != nil {
		writeJSON(w, http.StatusOK, submission.Result)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"quiz":   req.Quiz,
		"result": submission.Echo,
	})
}

// HandleCreateQuiz adds a quiz shell.
//
// HTTP: POST /api/quizzes (RequireAdmin)
func (h *QuizHandler) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title             string `json:"title"`
		HasCorrectAnswers bool   `json:"has_correct_answers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	quiz, err := h.quizzes.CreateQuiz(r.Context(), req.Title, req.HasCorrectAnswers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

// HandleCreateQuestion attaches a question to a quiz.
//
// HTTP: POST /api/quizzes/{id}/questions (RequireAdmin)
func (h *QuizHandler) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	question, err := h.quizzes.CreateQuestion(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

// HandleCreateAnswer attaches an answer option to a question.
//
// HTTP: POST /api/questions/{id}/answers (RequireAdmin)
func (h *QuizHandler) HandleCreateAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string `json:"text"`
		IsCorrect bool   `json:"is_correct"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	answer, err := h.quizzes.CreateAnswer(r.Context(), chi.URLParam(r, "id"), req.Text, req.IsCorrect)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, answer)
}
