package sqlite

import (
	"context"
	"testing"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

// newTestDB opens a fresh in-memory database per test. Fast, isolated,
// destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		PasswordHash: "$2a$04$test",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return user
}

func createTestRunner(t *testing.T, db *DB, name string) *model.Runner {
	t.Helper()
	runner := &model.Runner{Name: name}
	if err := db.CreateRunner(context.Background(), runner); err != nil {
		t.Fatalf("failed to create test runner %q: %v", name, err)
	}
	return runner
}
