package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

var _ repository.RunnerRepository = (*DB)(nil)

// The vote count is a correlated subquery rather than a JOIN + GROUP BY so
// that runners with zero votes still come back with votes = 0.
const runnerSelect = `
	SELECT r.id, r.name, r.image_url, r.description, r.is_quiz_runner, r.quiz_order,
	       (SELECT COUNT(*) FROM votes v WHERE v.runner_id = r.id) AS votes
	FROM runners r`

func scanRunner(row interface{ Scan(...any) error }) (*model.Runner, error) {
	var r model.Runner
	var quizOrder sql.NullInt64
	err := row.Scan(
		&r.ID, &r.Name, &r.ImageURL, &r.Description,
		&r.IsQuizRunner, &quizOrder, &r.Votes,
	)
	if err != nil {
		return nil, err
	}
	if quizOrder.Valid {
		order := int(quizOrder.Int64)
		r.QuizOrder = &order
	}
	return &r, nil
}

func (db *DB) CreateRunner(ctx context.Context, runner *model.Runner) error {
	runner.ID = xid.New().String()

	var quizOrder any
	if runner.QuizOrder != nil {
		quizOrder = *runner.QuizOrder
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO runners (id, name, image_url, description, is_quiz_runner, quiz_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runner.ID, runner.Name, runner.ImageURL, runner.Description,
		runner.IsQuizRunner, quizOrder,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating runner: %w", err)
	}
	return nil
}

func (db *DB) GetRunnerByID(ctx context.Context, id string) (*model.Runner, error) {
	runner, err := scanRunner(db.conn.QueryRowContext(ctx,
		runnerSelect+` WHERE r.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("runner", id)
		}
		return nil, fmt.Errorf("sqlite: getting runner %s: %w", id, err)
	}
	return runner, nil
}

func (db *DB) ListRunners(ctx context.Context) ([]model.Runner, error) {
	return db.queryRunners(ctx, runnerSelect+` ORDER BY r.name`)
}

func (db *DB) ListQuizRunners(ctx context.Context) ([]model.Runner, error) {
	return db.queryRunners(ctx,
		runnerSelect+` WHERE r.is_quiz_runner = 1 ORDER BY r.quiz_order`)
}

func (db *DB) queryRunners(ctx context.Context, query string) ([]model.Runner, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing runners: %w", err)
	}
	defer rows.Close()

	runners := []model.Runner{}
	for rows.Next() {
		r, err := scanRunner(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning runner row: %w", err)
		}
		runners = append(runners, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating runners: %w", err)
	}
	return runners, nil
}

func (db *DB) UpdateRunner(ctx context.Context, runner *model.Runner) error {
	var quizOrder any
	if runner.QuizOrder != nil {
		quizOrder = *runner.QuizOrder
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE runners
		 SET name = ?, image_url = ?, description = ?, is_quiz_runner = ?, quiz_order = ?
		 WHERE id = ?`,
		runner.Name, runner.ImageURL, runner.Description,
		runner.IsQuizRunner, quizOrder, runner.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating runner %s: %w", runner.ID, err)
	}
	return checkAffected(result, "runner", runner.ID)
}

func (db *DB) DeleteRunner(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM runners WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting runner %s: %w", id, err)
	}
	return checkAffected(result, "runner", id)
}

func (db *DB) CountRunners(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM runners`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting runners: %w", err)
	}
	return n, nil
}

// checkAffected translates "0 rows affected" into a NotFound error, the
// shared pattern for UPDATE/DELETE across this package.
func checkAffected(result sql.Result, resource, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
