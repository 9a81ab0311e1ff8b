package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

const MaxQuizTitleLength = 200

// QuizService lists quizzes and grades submissions.
type QuizService struct {
	quizzes repository.QuizRepository
	logger  *slog.Logger
}

func NewQuizService(quizzes repository.QuizRepository, logger *slog.Logger) *QuizService {
	return &QuizService{quizzes: quizzes, logger: logger}
}

// Submission is the outcome of a quiz submission. Exactly one of Result and
// Echo is set: scored quizzes produce a Result, non-scored quizzes echo the
// submitted answer IDs unchanged.
type Submission struct {
	Result *model.QuizResult
	Echo   []string
}

// List returns all quizzes with nested questions and answers.
func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.quizzes.ListQuizzes(ctx)
	if err != nil {
		s.logger.Error("failed to list quizzes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing quizzes: %w", err)
	}
	return quizzes, nil
}

// GetByID returns one quiz with nested questions and answers.
func (s *QuizService) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "quiz ID is required")
	}
	return s.quizzes.GetQuiz(ctx, id)
}

// Submit grades a quiz submission.
//
// Non-scored quizzes (surveys) are a pure echo: the selections come back
// unchanged and nothing is validated beyond the quiz existing.
//
// Scored quizzes validate the selection shape first: every selected answer
// must belong to the quiz, no answer may be selected twice, and at most one
// answer may be selected per question. The score is the number of selected
// answers marked correct, out of the quiz's question count; passing requires
// a correct selection for every question.
func (s *QuizService) Submit(ctx context.Context, quizID string, answerIDs []string) (*Submission, error) {
	quizID = strings.TrimSpace(quizID)
	if quizID == "" {
		return nil, apperror.ValidationFailed("quiz", "quiz ID is required")
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if !quiz.HasCorrectAnswers {
		if answerIDs == nil {
			answerIDs = []string{}
		}
		return &Submission{Echo: answerIDs}, nil
	}

	selected, err := s.quizzes.GetQuizAnswers(ctx, quizID, answerIDs)
	if err != nil {
		s.logger.Error("failed to resolve quiz answers",
			slog.String("quizID", quizID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("resolving quiz answers: %w", err)
	}

	// Answers outside the quiz fall out of the lookup; a length mismatch
	// means the submission referenced one (or repeated an ID).
	if len(selected) != len(answerIDs) {
		return nil, apperror.ValidationFailed("answers",
			"every selected answer must belong to the quiz, with no duplicates")
	}
	seen := make(map[string]bool, len(selected))
	for _, a := range selected {
		if seen[a.QuestionID] {
			return nil, apperror.ValidationFailed("answers",
				"at most one answer may be selected per question")
		}
		seen[a.QuestionID] = true
	}

	score := 0
	for _, a := range selected {
		if a.IsCorrect {
			score++
		}
	}
	total := len(quiz.Questions)

	s.logger.Info("quiz submitted",
		slog.String("quizID", quizID),
		slog.Int("score", score),
		slog.Int("total", total),
	)

	return &Submission{Result: &model.QuizResult{
		QuizID: quizID,
		Score:  score,
		Total:  total,
		Passed: total > 0 && score == total,
	}}, nil
}

// CreateQuiz adds an empty quiz shell; questions and answers are attached
// separately.
func (s *QuizService) CreateQuiz(ctx context.Context, title string, hasCorrectAnswers bool) (*model.Quiz, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "quiz title is required")
	}
	if len(title) > MaxQuizTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("quiz title must be %d characters or less", MaxQuizTitleLength))
	}

	quiz := &model.Quiz{
		Title:             title,
		HasCorrectAnswers: hasCorrectAnswers,
		Questions:         []model.Question{},
	}
	if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
		s.logger.Error("failed to create quiz", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating quiz: %w", err)
	}

	s.logger.Info("quiz created", slog.String("id", quiz.ID), slog.String("title", quiz.Title))
	return quiz, nil
}

// CreateQuestion attaches a question to an existing quiz.
func (s *QuizService) CreateQuestion(ctx context.Context, quizID, text string) (*model.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "question text is required")
	}
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:  quizID,
		Text:    text,
		Answers: []model.Answer{},
	}
	if err := s.quizzes.CreateQuestion(ctx, question); err != nil {
		s.logger.Error("failed to create question",
			slog.String("quizID", quizID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return question, nil
}

// CreateAnswer attaches an answer option to an existing question.
func (s *QuizService) CreateAnswer(ctx context.Context, questionID, text string, isCorrect bool) (*model.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "answer text is required")
	}
	if _, err := s.quizzes.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		Text:       text,
		IsCorrect:  isCorrect,
	}
	if err := s.quizzes.CreateAnswer(ctx, answer); err != nil {
		s.logger.Error("failed to create answer",
			slog.String("questionID", questionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating answer: %w", err)
	}
	return answer, nil
}
