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

const MaxRunnerNameLength = 100

// RunnerService manages the poll candidates.
type RunnerService struct {
	runners repository.RunnerRepository
	logger  *slog.Logger
}

func NewRunnerService(runners repository.RunnerRepository, logger *slog.Logger) *RunnerService {
	return &RunnerService{runners: runners, logger: logger}
}

// Create adds a runner. quizOrder is only meaningful for quiz runners and
// may be nil.
func (s *RunnerService) Create(ctx context.Context, name, imageURL, description string, isQuizRunner bool, quizOrder *int) (*model.Runner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "runner name is required")
	}
	if len(name) > MaxRunnerNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("runner name must be %d characters or less", MaxRunnerNameLength))
	}

	runner := &model.Runner{
		Name:         name,
		ImageURL:     strings.TrimSpace(imageURL),
		Description:  strings.TrimSpace(description),
		IsQuizRunner: isQuizRunner,
		QuizOrder:    quizOrder,
	}
	if err := s.runners.CreateRunner(ctx, runner); err != nil {
		s.logger.Error("failed to create runner",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating runner: %w", err)
	}

	s.logger.Info("runner created",
		slog.String("id", runner.ID),
		slog.String("name", runner.Name),
	)
	return runner, nil
}

// GetByID returns a runner with its live vote count.
func (s *RunnerService) GetByID(ctx context.Context, id string) (*model.Runner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "runner ID is required")
	}
	return s.runners.GetRunnerByID(ctx, id)
}

// List returns all runners, each with its live vote count, ordered by name.
func (s *RunnerService) List(ctx context.Context) ([]model.Runner, error) {
	runners, err := s.runners.ListRunners(ctx)
	if err != nil {
		s.logger.Error("failed to list runners", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing runners: %w", err)
	}
	return runners, nil
}

// ListQuiz returns the quiz-eligible runners ordered by their quiz position.
func (s *RunnerService) ListQuiz(ctx context.Context) ([]model.Runner, error) {
	runners, err := s.runners.ListQuizRunners(ctx)
	if err != nil {
		s.logger.Error("failed to list quiz runners", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing quiz runners: %w", err)
	}
	return runners, nil
}

// Update replaces a runner's editable fields. Fetch-then-update so a missing
// runner surfaces as NotFound before anything is written.
func (s *RunnerService) Update(ctx context.Context, id, name, imageURL, description string, isQuizRunner bool, quizOrder *int) (*model.Runner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "runner ID is required")
	}

	runner, err := s.runners.GetRunnerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if len(name) > MaxRunnerNameLength {
			return nil, apperror.ValidationFailed("name",
				fmt.Sprintf("runner name must be %d characters or less", MaxRunnerNameLength))
		}
		runner.Name = name
	}
	runner.ImageURL = strings.TrimSpace(imageURL)
	runner.Description = strings.TrimSpace(description)
	runner.IsQuizRunner = isQuizRunner
	runner.QuizOrder = quizOrder

	if err := s.runners.UpdateRunner(ctx, runner); err != nil {
		s.logger.Error("failed to update runner",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating runner: %w", err)
	}

	s.logger.Info("runner updated", slog.String("id", runner.ID))
	return runner, nil
}

// Delete removes a runner. Its votes go with it (ON DELETE CASCADE).
func (s *RunnerService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "runner ID is required")
	}
	if err := s.runners.DeleteRunner(ctx, id); err != nil {
		return err
	}
	s.logger.Info("runner deleted", slog.String("id", id))
	return nil
}
