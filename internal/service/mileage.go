package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

// mileagePolicy is one row of the planning policy table. A zero cap means
// the bracket caps nothing.
type mileagePolicy struct {
	jump  int
	start int
	cap   int
}

// policyFor returns the policy row for an age bracket and injury flag.
// Anything outside the under-20 and 50-plus brackets uses the middle row.
func policyFor(age, injury string) mileagePolicy {
	injured := injury == model.InjuryYes
	switch age {
	case model.AgeUnderTwenty:
		if injured {
			return mileagePolicy{jump: 3, start: 20, cap: 70}
		}
		return mileagePolicy{jump: 4, start: 25, cap: 70}
	case model.AgeFiftyPlus:
		if injured {
			return mileagePolicy{jump: 2, start: 15, cap: 50}
		}
		return mileagePolicy{jump: 3, start: 20, cap: 50}
	default:
		if injured {
			return mileagePolicy{jump: 3, start: 20}
		}
		return mileagePolicy{jump: 4, start: 20}
	}
}

// MileageService computes and stores weekly-mileage training progressions.
type MileageService struct {
	mileage repository.MileageRepository
	logger  *slog.Logger
}

func NewMileageService(mileage repository.MileageRepository, logger *slog.Logger) *MileageService {
	return &MileageService{mileage: mileage, logger: logger}
}

// Plan computes a progression, persists it, and returns it with the user's
// full history (newest first, the new result included).
//
// The formula: desired mileage is clamped to the bracket's cap, start
// mileage is clamped to at most the (clamped) desired mileage, and
// weeks = max(0, round((desired − start) / jump)) with ties rounding to
// even, so a .5 boundary never drifts upward across repeated plans.
func (s *MileageService) Plan(ctx context.Context, userID, age, injury string, desiredMileage int) (*model.MileageResult, []model.MileageResult, error) {
	if !model.ValidAgeBracket(age) {
		return nil, nil, apperror.ValidationFailed("age",
			fmt.Sprintf("age must be one of %q, %q, %q", model.AgeUnderTwenty, model.AgeTwentyForty, model.AgeFiftyPlus))
	}
	if !model.ValidInjury(injury) {
		return nil, nil, apperror.ValidationFailed("injury", `injury must be "yes" or "no"`)
	}
	if desiredMileage <= 0 {
		return nil, nil, apperror.ValidationFailed("desiredMileage", "desired mileage must be a positive integer")
	}

	policy := policyFor(age, injury)

	desired := desiredMileage
	if policy.cap > 0 && desired > policy.cap {
		desired = policy.cap
	}
	start := policy.start
	if start > desired {
		start = desired
	}
	weeks := int(math.RoundToEven(float64(desired-start) / float64(policy.jump)))
	if weeks < 0 {
		weeks = 0
	}

	result := &model.MileageResult{
		UserID:         userID,
		Age:            age,
		Injury:         injury,
		DesiredMileage: desired,
		StartMileage:   start,
		Jump:           policy.jump,
		Weeks:          weeks,
	}
	if err := s.mileage.CreateMileageResult(ctx, result); err != nil {
		s.logger.Error("failed to store mileage result",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("storing mileage result: %w", err)
	}

	s.logger.Info("mileage plan computed",
		slog.String("userID", userID),
		slog.Int("desired", desired),
		slog.Int("weeks", weeks),
	)

	history, err := s.mileage.MileageHistory(ctx, userID, repository.MileageHistoryOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("loading mileage history: %w", err)
	}
	return result, history, nil
}

// Latest returns the user's most recent result, or apperror.ErrNotFound when
// the user has none yet.
func (s *MileageService) Latest(ctx context.Context, userID string) (*model.MileageResult, error) {
	return s.mileage.LatestMileage(ctx, userID)
}

// History returns the user's results, optionally filtered by age bracket and
// sorted by desired mileage. Defaults to newest-first.
func (s *MileageService) History(ctx context.Context, userID, age, sort string) ([]model.MileageResult, error) {
	if age != "" && !model.ValidAgeBracket(age) {
		return nil, apperror.ValidationFailed("age",
			fmt.Sprintf("age must be one of %q, %q, %q", model.AgeUnderTwenty, model.AgeTwentyForty, model.AgeFiftyPlus))
	}
	if sort != "" && sort != "asc" && sort != "desc" {
		return nil, apperror.ValidationFailed("sort", `sort must be "asc" or "desc"`)
	}

	history, err := s.mileage.MileageHistory(ctx, userID, repository.MileageHistoryOptions{
		Age:  age,
		Sort: sort,
	})
	if err != nil {
		s.logger.Error("failed to load mileage history",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading mileage history: %w", err)
	}
	return history, nil
}
