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

// Compile-time check that *DB satisfies the interface.
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, username, password_hash, COALESCE(github_id, 0),
	email, avatar_url, is_admin, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.GitHubID,
		&u.Email, &u.AvatarURL, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. A duplicate username violates the UNIQUE
// constraint and is reported as apperror.ErrConflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	// github_id must stay NULL (not 0) for password accounts, or the UNIQUE
	// constraint would reject the second password-only signup.
	var githubID any
	if user.GitHubID != 0 {
		githubID = user.GitHubID
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, github_id, email, avatar_url, is_admin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, githubID,
		user.Email, user.AvatarURL, user.IsAdmin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("A user with that username already exists.")
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return user, nil
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user by username %q: %w", username, err)
	}
	return user, nil
}

// UpsertByGitHubID inserts the user on first OAuth login and refreshes the
// profile fields on later logins. GitHub IDs are stable and unique, so the
// conflict target is github_id. Fills user.ID in both cases.
func (db *DB) UpsertByGitHubID(ctx context.Context, user *model.User) error {
	now := time.Now()

	var existingID, existingUsername string
	var isAdmin bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, is_admin FROM users WHERE github_id = ?`, user.GitHubID,
	).Scan(&existingID, &existingUsername, &isAdmin)

	switch {
	case err == sql.ErrNoRows:
		user.ID = xid.New().String()
		user.CreatedAt = now
		user.UpdatedAt = now
		_, err = db.conn.ExecContext(ctx,
			`INSERT INTO users (id, username, password_hash, github_id, email, avatar_url, is_admin, created_at, updated_at)
			 VALUES (?, ?, '', ?, ?, ?, 0, ?, ?)`,
			user.ID, user.Username, user.GitHubID,
			user.Email, user.AvatarURL, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperror.Conflict("A user with that username already exists.")
			}
			return fmt.Errorf("sqlite: inserting OAuth user: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("sqlite: looking up OAuth user: %w", err)
	}

	// Keep the stored username and admin flag authoritative on re-login.
	user.ID = existingID
	user.Username = existingUsername
	user.IsAdmin = isAdmin
	user.UpdatedAt = now
	_, err = db.conn.ExecContext(ctx,
		`UPDATE users SET email = ?, avatar_url = ?, updated_at = ? WHERE id = ?`,
		user.Email, user.AvatarURL, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating OAuth user %s: %w", user.ID, err)
	}
	return nil
}
