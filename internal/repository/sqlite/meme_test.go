package sqlite

import (
	"context"
	"testing"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

func createTestMeme(t *testing.T, db *DB, userID, category string) *model.Meme {
	t.Helper()
	meme := &model.Meme{
		UserID:   userID,
		Title:    "t",
		ImageURL: "https://example.com/m.png",
		Category: category,
	}
	if err := db.CreateMeme(context.Background(), meme); err != nil {
		t.Fatalf("failed to create test meme: %v", err)
	}
	return meme
}

func TestCountMemesByCategory_SortedDescending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	for _, cat := range []string{
		model.MemeCategoryUsain, model.MemeCategoryUsain, model.MemeCategoryUsain,
		model.MemeCategoryEliud,
		model.MemeCategoryGeneral, model.MemeCategoryGeneral,
	} {
		createTestMeme(t, db, user.ID, cat)
	}

	counts, err := db.CountMemesByCategory(ctx)
	if err != nil {
		t.Fatalf("CountMemesByCategory() error = %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("got %d categories, want 3", len(counts))
	}
	if counts[0].Category != model.MemeCategoryUsain || counts[0].Count != 3 {
		t.Errorf("top category = %+v, want usain/3", counts[0])
	}
	for i := 1; i < len(counts); i++ {
		if counts[i].Count > counts[i-1].Count {
			t.Errorf("counts not descending at %d: %+v", i, counts)
		}
	}

	total, err := db.CountMemes(ctx)
	if err != nil {
		t.Fatalf("CountMemes() error = %v", err)
	}
	if total != 6 {
		t.Errorf("CountMemes() = %d, want 6", total)
	}
}
