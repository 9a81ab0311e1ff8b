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

var _ repository.MemeRepository = (*DB)(nil)

func (db *DB) CreateMeme(ctx context.Context, meme *model.Meme) error {
	meme.ID = xid.New().String()
	meme.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO memes (id, user_id, title, image_url, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		meme.ID, meme.UserID, meme.Title, meme.ImageURL, meme.Category, meme.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating meme: %w", err)
	}
	return nil
}

func (db *DB) GetMemeByID(ctx context.Context, id string) (*model.Meme, error) {
	var m model.Meme
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, image_url, category, created_at
		 FROM memes WHERE id = ?`, id,
	).Scan(&m.ID, &m.UserID, &m.Title, &m.ImageURL, &m.Category, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("meme", id)
		}
		return nil, fmt.Errorf("sqlite: getting meme %s: %w", id, err)
	}
	return &m, nil
}

func (db *DB) ListMemes(ctx context.Context) ([]model.Meme, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, title, image_url, category, created_at
		 FROM memes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing memes: %w", err)
	}
	defer rows.Close()

	memes := []model.Meme{}
	for rows.Next() {
		var m model.Meme
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.ImageURL, &m.Category, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning meme row: %w", err)
		}
		memes = append(memes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating memes: %w", err)
	}
	return memes, nil
}

func (db *DB) UpdateMeme(ctx context.Context, meme *model.Meme) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE memes SET title = ?, image_url = ?, category = ? WHERE id = ?`,
		meme.Title, meme.ImageURL, meme.Category, meme.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating meme %s: %w", meme.ID, err)
	}
	return checkAffected(result, "meme", meme.ID)
}

func (db *DB) DeleteMeme(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM memes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting meme %s: %w", id, err)
	}
	return checkAffected(result, "meme", id)
}

func (db *DB) CountMemes(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM memes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting memes: %w", err)
	}
	return n, nil
}

// CountMemesByCategory returns the category breakdown, most populous first.
// Equal counts order by category name so the stats output is stable.
func (db *DB) CountMemesByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT category, COUNT(*) AS n
		 FROM memes GROUP BY category ORDER BY n DESC, category ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting memes by category: %w", err)
	}
	defer rows.Close()

	counts := []model.CategoryCount{}
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating category counts: %w", err)
	}
	return counts, nil
}
