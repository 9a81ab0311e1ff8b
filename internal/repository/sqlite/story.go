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

var _ repository.StoryRepository = (*DB)(nil)

// Stories are always read together with the author's username and the
// reaction count, so the SELECT joins users and counts reactions inline.
const storySelect = `
	SELECT s.id, s.author_id, u.username, s.content, s.created_at,
	       (SELECT COUNT(*) FROM reactions x WHERE x.story_id = s.id) AS reactions
	FROM stories s
	JOIN users u ON u.id = s.author_id`

func scanStory(row interface{ Scan(...any) error }) (*model.Story, error) {
	var s model.Story
	err := row.Scan(
		&s.ID, &s.AuthorID, &s.AuthorUsername, &s.Content,
		&s.CreatedAt, &s.ReactionsCount,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) CreateStory(ctx context.Context, story *model.Story) error {
	story.ID = xid.New().String()
	story.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO stories (id, author_id, content, created_at) VALUES (?, ?, ?, ?)`,
		story.ID, story.AuthorID, story.Content, story.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating story: %w", err)
	}
	return nil
}

func (db *DB) GetStoryByID(ctx context.Context, id string) (*model.Story, error) {
	story, err := scanStory(db.conn.QueryRowContext(ctx, storySelect+` WHERE s.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("story", id)
		}
		return nil, fmt.Errorf("sqlite: getting story %s: %w", id, err)
	}
	return story, nil
}

func (db *DB) ListStories(ctx context.Context) ([]model.Story, error) {
	return db.queryStories(ctx, storySelect+` ORDER BY s.created_at DESC`)
}

// SearchStories matches the query as a case-insensitive substring of the
// content. LIKE is case-insensitive for ASCII in SQLite by default, which
// matches the original's icontains behaviour.
func (db *DB) SearchStories(ctx context.Context, query string) ([]model.Story, error) {
	return db.queryStories(ctx,
		storySelect+` WHERE s.content LIKE ? ESCAPE '\' ORDER BY s.created_at DESC`,
		"%"+escapeLike(query)+"%")
}

// escapeLike neutralises LIKE wildcards in user input so "100%" matches the
// literal text, not everything.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

func (db *DB) queryStories(ctx context.Context, query string, args ...any) ([]model.Story, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing stories: %w", err)
	}
	defer rows.Close()

	stories := []model.Story{}
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning story row: %w", err)
		}
		stories = append(stories, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating stories: %w", err)
	}
	return stories, nil
}

func (db *DB) DeleteStory(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting story %s: %w", id, err)
	}
	return checkAffected(result, "story", id)
}

// CreateReaction inserts the reaction. The UNIQUE(user_id, story_id)
// constraint rejects a second reaction by the same user on the same story.
func (db *DB) CreateReaction(ctx context.Context, reaction *model.Reaction) error {
	reaction.ID = xid.New().String()
	reaction.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO reactions (id, user_id, story_id, created_at) VALUES (?, ?, ?, ?)`,
		reaction.ID, reaction.UserID, reaction.StoryID, reaction.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("You already reacted to this story.")
		}
		return fmt.Errorf("sqlite: creating reaction: %w", err)
	}
	return nil
}
