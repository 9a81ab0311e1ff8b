package model

import "time"

// Runner is a poll candidate, one of the runners users can vote for.
//
// Votes is a derived field: the repository fills it from the votes table when
// listing runners. It is never written back.
//
// IsQuizRunner and QuizOrder drive the "guess the runner" quiz page: only
// flagged runners appear there, sorted by QuizOrder. QuizOrder is a pointer
// because unflagged runners have no meaningful position (NULL in the DB).
type Runner struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ImageURL     string `json:"image"`
	Description  string `json:"description"`
	IsQuizRunner bool   `json:"is_quiz_runner"`
	QuizOrder    *int   `json:"quiz_order,omitempty"`
	Votes        int    `json:"votes"`
}

// Vote binds a user to the runner they voted for. The votes table has a
// UNIQUE constraint on user_id: at most one vote per user, enforced by the
// database, which is the only concurrency control the vote path needs.
type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	RunnerID  string    `json:"runner"`
	CreatedAt time.Time `json:"created_at"`
}
