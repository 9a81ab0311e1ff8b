// Package repository declares the persistence interfaces consumed by the
// service layer. The sqlite subpackage provides the concrete implementation;
// tests substitute in-memory mocks.
//
// Method names are entity-qualified (CreateVote, not Create) because a single
// *sqlite.DB implements every interface here.
package repository

import (
	"context"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

// MileageHistoryOptions narrows and orders a user's mileage history.
// Sort applies to desired mileage; when empty the history comes back
// newest-first by creation time.
type MileageHistoryOptions struct {
	Age  string // optional age-bracket filter, "" = all
	Sort string // "asc" | "desc" | ""
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// UpsertByGitHubID inserts on first OAuth login, refreshes profile
	// fields on subsequent logins. Fills user.ID either way.
	UpsertByGitHubID(ctx context.Context, user *model.User) error
}

type RunnerRepository interface {
	CreateRunner(ctx context.Context, runner *model.Runner) error
	GetRunnerByID(ctx context.Context, id string) (*model.Runner, error)
	// ListRunners returns all runners with their vote counts filled in.
	ListRunners(ctx context.Context) ([]model.Runner, error)
	// ListQuizRunners returns quiz-eligible runners ordered by quiz order.
	ListQuizRunners(ctx context.Context) ([]model.Runner, error)
	UpdateRunner(ctx context.Context, runner *model.Runner) error
	DeleteRunner(ctx context.Context, id string) error
	CountRunners(ctx context.Context) (int, error)
}

type VoteRepository interface {
	// CreateVote inserts the vote. A second vote by the same user violates
	// the user_id UNIQUE constraint and comes back as apperror.ErrConflict.
	CreateVote(ctx context.Context, vote *model.Vote) error
	// TallyVotes groups votes by runner. Runners with zero votes are absent.
	TallyVotes(ctx context.Context) (map[string]int, error)
	// TopRunner returns the most-voted runner's name and its count.
	// Ties break deterministically on lowest runner ID. ok is false when
	// no votes exist at all.
	TopRunner(ctx context.Context) (name string, count int, ok bool, err error)
}

type MemeRepository interface {
	CreateMeme(ctx context.Context, meme *model.Meme) error
	GetMemeByID(ctx context.Context, id string) (*model.Meme, error)
	ListMemes(ctx context.Context) ([]model.Meme, error)
	UpdateMeme(ctx context.Context, meme *model.Meme) error
	DeleteMeme(ctx context.Context, id string) error
	CountMemes(ctx context.Context) (int, error)
	// CountMemesByCategory returns per-category counts, count descending.
	CountMemesByCategory(ctx context.Context) ([]model.CategoryCount, error)
}

type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *model.Quiz) error
	CreateQuestion(ctx context.Context, question *model.Question) error
	CreateAnswer(ctx context.Context, answer *model.Answer) error
	// GetQuiz returns the quiz with nested questions and answers.
	GetQuiz(ctx context.Context, id string) (*model.Quiz, error)
	GetQuestion(ctx context.Context, id string) (*model.Question, error)
	ListQuizzes(ctx context.Context) ([]model.Quiz, error)
	// CountQuestions returns the number of questions in a quiz.
	CountQuestions(ctx context.Context, quizID string) (int, error)
	// GetQuizAnswers resolves answer rows for the given IDs, scoped to one
	// quiz. IDs outside the quiz are simply absent from the result.
	GetQuizAnswers(ctx context.Context, quizID string, answerIDs []string) ([]model.Answer, error)
}

type StoryRepository interface {
	CreateStory(ctx context.Context, story *model.Story) error
	GetStoryByID(ctx context.Context, id string) (*model.Story, error)
	ListStories(ctx context.Context) ([]model.Story, error)
	// SearchStories matches content case-insensitively, newest first.
	SearchStories(ctx context.Context, query string) ([]model.Story, error)
	DeleteStory(ctx context.Context, id string) error
	// CreateReaction inserts a reaction; a duplicate (user, story) pair
	// violates the UNIQUE constraint and comes back as apperror.ErrConflict.
	CreateReaction(ctx context.Context, reaction *model.Reaction) error
}

type RatingRepository interface {
	// GetOrCreateRating returns the user's rating row, inserting a zero
	// rating on first access.
	GetOrCreateRating(ctx context.Context, userID string) (*model.WebsiteRating, error)
	SetRating(ctx context.Context, userID string, rating int) error
}

type TimelineRepository interface {
	CreateEvent(ctx context.Context, event *model.TimelineEvent) error
	GetEvent(ctx context.Context, id string) (*model.TimelineEvent, error)
	// ListEvents returns events ordered by (position, year) with references.
	ListEvents(ctx context.Context) ([]model.TimelineEvent, error)
	UpdateEvent(ctx context.Context, event *model.TimelineEvent) error
	DeleteEvent(ctx context.Context, id string) error
	CreateReference(ctx context.Context, ref *model.TimelineReference) error
	ListReferences(ctx context.Context, eventID string) ([]model.TimelineReference, error)
	UpdateReference(ctx context.Context, ref *model.TimelineReference) error
	DeleteReference(ctx context.Context, id string) error
}

type MileageRepository interface {
	CreateMileageResult(ctx context.Context, result *model.MileageResult) error
	// LatestMileage returns the user's most recent result, or ErrNotFound.
	LatestMileage(ctx context.Context, userID string) (*model.MileageResult, error)
	MileageHistory(ctx context.Context, userID string, opts MileageHistoryOptions) ([]model.MileageResult, error)
	// AverageDesiredMileage is the mean desired mileage across ALL users'
	// results; nil when no results exist.
	AverageDesiredMileage(ctx context.Context) (*float64, error)
}
