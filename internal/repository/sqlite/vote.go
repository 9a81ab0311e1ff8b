package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

var _ repository.VoteRepository = (*DB)(nil)

// CreateVote inserts the vote row. There is deliberately no "check then
// insert" here: the UNIQUE constraint on user_id is the single authority on
// whether the user has voted, so two concurrent casts can never both win.
// The losing insert surfaces as apperror.ErrConflict.
func (db *DB) CreateVote(ctx context.Context, vote *model.Vote) error {
	vote.ID = xid.New().String()
	vote.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO votes (id, user_id, runner_id, created_at) VALUES (?, ?, ?, ?)`,
		vote.ID, vote.UserID, vote.RunnerID, vote.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("You have already voted.")
		}
		return fmt.Errorf("sqlite: creating vote: %w", err)
	}
	return nil
}

// TallyVotes returns the current runner→count mapping. Sparse: runners
// nobody voted for are absent. Read-only, safe to call arbitrarily often.
func (db *DB) TallyVotes(ctx context.Context) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT runner_id, COUNT(*) FROM votes GROUP BY runner_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: tallying votes: %w", err)
	}
	defer rows.Close()

	tally := make(map[string]int)
	for rows.Next() {
		var runnerID string
		var count int
		if err := rows.Scan(&runnerID, &count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tally row: %w", err)
		}
		tally[runnerID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tally: %w", err)
	}
	return tally, nil
}

// TopRunner returns the name and vote count of the most-voted runner.
// The tie-break is deterministic: equal counts resolve to the lowest runner
// ID, so repeated calls with the same data always agree.
func (db *DB) TopRunner(ctx context.Context) (string, int, bool, error) {
	var name string
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT r.name, COUNT(v.id) AS votes
		 FROM votes v
		 JOIN runners r ON r.id = v.runner_id
		 GROUP BY v.runner_id
		 ORDER BY votes DESC, v.runner_id ASC
		 LIMIT 1`,
	).Scan(&name, &count)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", 0, false, nil
		}
		return "", 0, false, fmt.Errorf("sqlite: finding top runner: %w", err)
	}
	return name, count, true, nil
}
