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

var _ repository.MileageRepository = (*DB)(nil)

const mileageColumns = `id, COALESCE(user_id, ''), age, injury,
	desired_mileage, start_mileage, jump, weeks, created_at`

func scanMileage(row interface{ Scan(...any) error }) (*model.MileageResult, error) {
	var m model.MileageResult
	err := row.Scan(
		&m.ID, &m.UserID, &m.Age, &m.Injury,
		&m.DesiredMileage, &m.StartMileage, &m.Jump, &m.Weeks, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (db *DB) CreateMileageResult(ctx context.Context, result *model.MileageResult) error {
	result.ID = xid.New().String()
	result.CreatedAt = time.Now()

	var userID any
	if result.UserID != "" {
		userID = result.UserID
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO mileage_results
		 (id, user_id, age, injury, desired_mileage, start_mileage, jump, weeks, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, userID, result.Age, result.Injury,
		result.DesiredMileage, result.StartMileage, result.Jump, result.Weeks,
		result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating mileage result: %w", err)
	}
	return nil
}

// LatestMileage returns the user's most recent result by creation time.
func (db *DB) LatestMileage(ctx context.Context, userID string) (*model.MileageResult, error) {
	result, err := scanMileage(db.conn.QueryRowContext(ctx,
		`SELECT `+mileageColumns+`
		 FROM mileage_results WHERE COALESCE(user_id, '') = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("mileage result", userID)
		}
		return nil, fmt.Errorf("sqlite: getting latest mileage for user %s: %w", userID, err)
	}
	return result, nil
}

// MileageHistory returns the user's results. sort=asc/desc orders by desired
// mileage; anything else falls back to newest-first. xid primary keys are
// time-ordered, so "created_at DESC, id DESC" is stable within one second.
func (db *DB) MileageHistory(ctx context.Context, userID string, opts repository.MileageHistoryOptions) ([]model.MileageResult, error) {
	// Anonymous results are stored with a NULL user_id and queried as "".
	query := `SELECT ` + mileageColumns + ` FROM mileage_results WHERE COALESCE(user_id, '') = ?`
	args := []any{userID}

	if opts.Age != "" {
		query += ` AND age = ?`
		args = append(args, opts.Age)
	}

	switch opts.Sort {
	case "asc":
		query += ` ORDER BY desired_mileage ASC`
	case "desc":
		query += ` ORDER BY desired_mileage DESC`
	default:
		query += ` ORDER BY created_at DESC, id DESC`
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing mileage history: %w", err)
	}
	defer rows.Close()

	results := []model.MileageResult{}
	for rows.Next() {
		m, err := scanMileage(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning mileage row: %w", err)
		}
		results = append(results, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating mileage history: %w", err)
	}
	return results, nil
}

// AverageDesiredMileage is the mean desired mileage across all stored
// results (all users). Returns nil when the table is empty, so the stats
// endpoint can serialize it as JSON null the way the original did.
func (db *DB) AverageDesiredMileage(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	err := db.conn.QueryRowContext(ctx,
		`SELECT AVG(desired_mileage) FROM mileage_results`).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("sqlite: averaging desired mileage: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
