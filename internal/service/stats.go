package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

// Stats is the aggregate snapshot served by /api/stats. The pointer fields
// serialize as null when there is no data behind them: no votes means no
// most-voted runner, no memes means no top category, no mileage results
// means no average.
type Stats struct {
	TotalRunners          int                   `json:"total_runners"`
	MostVotedRunner       *string               `json:"most_voted_runner"`
	TopVotes              int                   `json:"top_votes"`
	TotalMemes            int                   `json:"total_memes"`
	MemesByCategory       []model.CategoryCount `json:"memes_by_category"`
	TopMemeCategory       *string               `json:"top_meme_category"`
	TopMemeCount          int                   `json:"top_meme_count"`
	AverageDesiredMileage *float64              `json:"average_desired_mileage"`
}

// StatsService computes the site-wide stats snapshot. Read-only, computed
// fresh on every call.
type StatsService struct {
	runners repository.RunnerRepository
	votes   repository.VoteRepository
	memes   repository.MemeRepository
	mileage repository.MileageRepository
	logger  *slog.Logger
}

func NewStatsService(
	runners repository.RunnerRepository,
	votes repository.VoteRepository,
	memes repository.MemeRepository,
	mileage repository.MileageRepository,
	logger *slog.Logger,
) *StatsService {
	return &StatsService{
		runners: runners,
		votes:   votes,
		memes:   memes,
		mileage: mileage,
		logger:  logger,
	}
}

// Snapshot gathers the current aggregates.
func (s *StatsService) Snapshot(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	totalRunners, err := s.runners.CountRunners(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting runners: %w", err)
	}
	stats.TotalRunners = totalRunners

	name, count, ok, err := s.votes.TopRunner(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding most voted runner: %w", err)
	}
	if ok {
		stats.MostVotedRunner = &name
		stats.TopVotes = count
	}

	totalMemes, err := s.memes.CountMemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting memes: %w", err)
	}
	stats.TotalMemes = totalMemes

	byCategory, err := s.memes.CountMemesByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting memes by category: %w", err)
	}
	stats.MemesByCategory = byCategory
	if len(byCategory) > 0 {
		top := byCategory[0] // already sorted count-descending
		stats.TopMemeCategory = &top.Category
		stats.TopMemeCount = top.Count
	}

	average, err := s.mileage.AverageDesiredMileage(ctx)
	if err != nil {
		return nil, fmt.Errorf("averaging desired mileage: %w", err)
	}
	stats.AverageDesiredMileage = average

	s.logger.Debug("stats snapshot computed",
		slog.Int("runners", stats.TotalRunners),
		slog.Int("memes", stats.TotalMemes),
	)
	return stats, nil
}
