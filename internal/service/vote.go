package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/stream"
)

// VoteService casts votes and distributes live tallies.
//
// One vote per user, enforced solely by the votes.user_id UNIQUE constraint;
// the service does no check-then-insert, so concurrent casts cannot race.
// After every successful cast the fresh tally is pushed to the hub, which
// fans it out to connected result streams.
type VoteService struct {
	votes   repository.VoteRepository
	runners repository.RunnerRepository
	hub     *stream.Hub
	logger  *slog.Logger
}

func NewVoteService(
	votes repository.VoteRepository,
	runners repository.RunnerRepository,
	hub *stream.Hub,
	logger *slog.Logger,
) *VoteService {
	return &VoteService{
		votes:   votes,
		runners: runners,
		hub:     hub,
		logger:  logger,
	}
}

// Cast records userID's vote for runnerID. Votes are final once cast.
// A second vote by the same user fails with apperror.ErrConflict; an
// unknown runner fails with apperror.ErrNotFound.
func (s *VoteService) Cast(ctx context.Context, userID, runnerID string) (*model.Vote, error) {
	runnerID = strings.TrimSpace(runnerID)
	if runnerID == "" {
		return nil, apperror.ValidationFailed("runner", "runner ID is required")
	}

	if _, err := s.runners.GetRunnerByID(ctx, runnerID); err != nil {
		return nil, err
	}

	vote := &model.Vote{
		UserID:   userID,
		RunnerID: runnerID,
	}
	if err := s.votes.CreateVote(ctx, vote); err != nil {
		return nil, err
	}

	s.logger.Info("vote cast",
		slog.String("userID", userID),
		slog.String("runnerID", runnerID),
	)

	// Push the new tally to live subscribers. A tally read failure here
	// does not fail the cast; the vote is already committed.
	tally, err := s.votes.TallyVotes(ctx)
	if err != nil {
		s.logger.Error("failed to recompute tally after vote", slog.String("error", err.Error()))
		return vote, nil
	}
	s.hub.Publish(tally)

	return vote, nil
}

// Tally returns the current vote counts grouped by runner ID. Runners with
// zero votes are absent from the map.
func (s *VoteService) Tally(ctx context.Context) (map[string]int, error) {
	tally, err := s.votes.TallyVotes(ctx)
	if err != nil {
		s.logger.Error("failed to tally votes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("tallying votes: %w", err)
	}
	return tally, nil
}

// Subscribe attaches a live-results subscriber bound to ctx. The channel
// first yields the current tally, then every change, and closes when ctx is
// cancelled.
func (s *VoteService) Subscribe(ctx context.Context) (<-chan []byte, error) {
	tally, err := s.votes.TallyVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("tallying votes for stream: %w", err)
	}
	return s.hub.Subscribe(ctx, tally), nil
}
