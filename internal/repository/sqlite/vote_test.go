package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

func castVote(t *testing.T, db *DB, userID, runnerID string) *model.Vote {
	t.Helper()
	vote := &model.Vote{UserID: userID, RunnerID: runnerID}
	if err := db.CreateVote(context.Background(), vote); err != nil {
		t.Fatalf("failed to cast vote: %v", err)
	}
	return vote
}

func TestCreateVote(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	runner := createTestRunner(t, db, "Eliud")

	vote := castVote(t, db, user.ID, runner.ID)

	if vote.ID == "" {
		t.Error("CreateVote() did not set vote.ID")
	}
	if vote.CreatedAt.IsZero() {
		t.Error("CreateVote() did not set vote.CreatedAt")
	}
}

func TestCreateVote_SecondVoteConflicts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	first := createTestRunner(t, db, "Eliud")
	second := createTestRunner(t, db, "Usain")

	castVote(t, db, user.ID, first.ID)

	// A second vote must conflict even for a different runner.
	err := db.CreateVote(context.Background(), &model.Vote{UserID: user.ID, RunnerID: second.ID})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("CreateVote() second vote error = %v, want ErrConflict", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("CreateVote() error is not an *AppError: %v", err)
	}
	if appErr.Message != "You have already voted." {
		t.Errorf("conflict message = %q, want %q", appErr.Message, "You have already voted.")
	}
}

func TestTallyVotes_SumEqualsVoteCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	eliud := createTestRunner(t, db, "Eliud")
	usain := createTestRunner(t, db, "Usain")
	createTestRunner(t, db, "Gediminas") // never voted for

	voters := []string{"u1", "u2", "u3", "u4", "u5"}
	targets := []string{eliud.ID, eliud.ID, eliud.ID, usain.ID, usain.ID}
	for i, name := range voters {
		user := createTestUser(t, db, name)
		castVote(t, db, user.ID, targets[i])
	}

	tally, err := db.TallyVotes(ctx)
	if err != nil {
		t.Fatalf("TallyVotes() error = %v", err)
	}

	sum := 0
	for _, n := range tally {
		sum += n
	}
	if sum != len(voters) {
		t.Errorf("tally sum = %d, want %d", sum, len(voters))
	}
	if tally[eliud.ID] != 3 {
		t.Errorf("tally[eliud] = %d, want 3", tally[eliud.ID])
	}
	if tally[usain.ID] != 2 {
		t.Errorf("tally[usain] = %d, want 2", tally[usain.ID])
	}
	// Sparse: zero-vote runners must be absent.
	if len(tally) != 2 {
		t.Errorf("tally has %d entries, want 2 (zero-vote runners absent)", len(tally))
	}
}

func TestTopRunner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, _, ok, err := db.TopRunner(ctx)
	if err != nil {
		t.Fatalf("TopRunner() on empty db error = %v", err)
	}
	if ok {
		t.Error("TopRunner() ok = true with no votes, want false")
	}

	eliud := createTestRunner(t, db, "Eliud")
	usain := createTestRunner(t, db, "Usain")

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	castVote(t, db, alice.ID, usain.ID)
	castVote(t, db, bob.ID, usain.ID)
	castVote(t, db, carol.ID, eliud.ID)

	name, count, ok, err := db.TopRunner(ctx)
	if err != nil {
		t.Fatalf("TopRunner() error = %v", err)
	}
	if !ok {
		t.Fatal("TopRunner() ok = false, want true")
	}
	if name != "Usain" || count != 2 {
		t.Errorf("TopRunner() = (%q, %d), want (Usain, 2)", name, count)
	}
}

func TestTopRunner_TieBreaksOnLowestRunnerID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestRunner(t, db, "First")
	b := createTestRunner(t, db, "Second")

	// One vote each: the tie must resolve to the lower runner ID, which is
	// the earlier-created runner (xid is monotonic).
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	castVote(t, db, alice.ID, b.ID)
	castVote(t, db, bob.ID, a.ID)

	want := "First"
	if b.ID < a.ID {
		want = "Second"
	}

	name, count, ok, err := db.TopRunner(ctx)
	if err != nil || !ok {
		t.Fatalf("TopRunner() = (ok=%v, err=%v)", ok, err)
	}
	if name != want || count != 1 {
		t.Errorf("TopRunner() = (%q, %d), want (%q, 1)", name, count, want)
	}
}

func TestListRunners_IncludesVoteCounts(t *testing.T) {
	db := newTestDB(t)

	eliud := createTestRunner(t, db, "Eliud")
	usain := createTestRunner(t, db, "Usain")
	alice := createTestUser(t, db, "alice")
	castVote(t, db, alice.ID, eliud.ID)

	runners, err := db.ListRunners(context.Background())
	if err != nil {
		t.Fatalf("ListRunners() error = %v", err)
	}
	if len(runners) != 2 {
		t.Fatalf("ListRunners() returned %d runners, want 2", len(runners))
	}

	byID := map[string]model.Runner{}
	for _, r := range runners {
		byID[r.ID] = r
	}
	if byID[eliud.ID].Votes != 1 {
		t.Errorf("eliud votes = %d, want 1", byID[eliud.ID].Votes)
	}
	if byID[usain.ID].Votes != 0 {
		t.Errorf("usain votes = %d, want 0", byID[usain.ID].Votes)
	}
}
