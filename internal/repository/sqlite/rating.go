package sqlite

import (
	"context"
	"fmt"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

var _ repository.RatingRepository = (*DB)(nil)

// GetOrCreateRating returns the user's website rating, lazily inserting a
// zero rating on first access. INSERT OR IGNORE makes the create side
// idempotent under concurrent first requests.
func (db *DB) GetOrCreateRating(ctx context.Context, userID string) (*model.WebsiteRating, error) {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO website_ratings (user_id, rating) VALUES (?, 0)`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: creating rating row: %w", err)
	}

	rating := &model.WebsiteRating{UserID: userID}
	err = db.conn.QueryRowContext(ctx,
		`SELECT rating FROM website_ratings WHERE user_id = ?`, userID,
	).Scan(&rating.Rating)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting rating for user %s: %w", userID, err)
	}
	return rating, nil
}

func (db *DB) SetRating(ctx context.Context, userID string, rating int) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO website_ratings (user_id, rating) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET rating = excluded.rating`,
		userID, rating,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting rating for user %s: %w", userID, err)
	}
	return nil
}
