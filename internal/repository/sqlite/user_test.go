package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

func TestCreateUser_DuplicateUsernameConflicts(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	err := db.CreateUser(context.Background(), &model.User{
		Username:     "alice",
		PasswordHash: "$2a$04$other",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("CreateUser() duplicate error = %v, want ErrConflict", err)
	}
}

func TestGetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created := createTestUser(t, db, "alice")

	got, err := db.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetUserByUsername() ID = %s, want %s", got.ID, created.ID)
	}
	if got.PasswordHash == "" {
		t.Error("GetUserByUsername() did not return the password hash")
	}

	if _, err := db.GetUserByUsername(ctx, "nobody"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestUpsertByGitHubID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// First login inserts.
	user := &model.User{
		GitHubID:  12345,
		Username:  "octocat",
		Email:     "octo@example.com",
		AvatarURL: "https://example.com/a.png",
	}
	if err := db.UpsertByGitHubID(ctx, user); err != nil {
		t.Fatalf("UpsertByGitHubID() insert error = %v", err)
	}
	if user.ID == "" {
		t.Fatal("UpsertByGitHubID() did not set ID on insert")
	}
	firstID := user.ID

	// Second login updates profile fields but keeps identity.
	again := &model.User{
		GitHubID:  12345,
		Username:  "renamed-on-github",
		Email:     "new@example.com",
		AvatarURL: "https://example.com/b.png",
	}
	if err := db.UpsertByGitHubID(ctx, again); err != nil {
		t.Fatalf("UpsertByGitHubID() update error = %v", err)
	}
	if again.ID != firstID {
		t.Errorf("UpsertByGitHubID() changed ID: %s != %s", again.ID, firstID)
	}
	// The stored username stays authoritative.
	if again.Username != "octocat" {
		t.Errorf("Username after upsert = %q, want octocat", again.Username)
	}

	stored, err := db.GetUserByID(ctx, firstID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if stored.Email != "new@example.com" {
		t.Errorf("Email after upsert = %q, want new@example.com", stored.Email)
	}
}
