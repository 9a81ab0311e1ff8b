package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

// RatingService manages per-user website star ratings.
type RatingService struct {
	ratings repository.RatingRepository
	logger  *slog.Logger
}

func NewRatingService(ratings repository.RatingRepository, logger *slog.Logger) *RatingService {
	return &RatingService{ratings: ratings, logger: logger}
}

// Get returns the user's rating, lazily creating a zero rating on first
// access.
func (s *RatingService) Get(ctx context.Context, userID string) (*model.WebsiteRating, error) {
	rating, err := s.ratings.GetOrCreateRating(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get website rating",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("getting website rating: %w", err)
	}
	return rating, nil
}

// Set stores the user's rating, 0 through 5 stars.
func (s *RatingService) Set(ctx context.Context, userID string, rating int) (*model.WebsiteRating, error) {
	if rating < 0 || rating > 5 {
		return nil, apperror.ValidationFailed("rating", "rating must be between 0 and 5")
	}

	if err := s.ratings.SetRating(ctx, userID, rating); err != nil {
		s.logger.Error("failed to set website rating",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("setting website rating: %w", err)
	}

	s.logger.Info("website rating set",
		slog.String("userID", userID),
		slog.Int("rating", rating),
	)
	return &model.WebsiteRating{UserID: userID, Rating: rating}, nil
}
