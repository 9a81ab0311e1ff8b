package model

import "time"

// Story is a short user-written post.
//
// AuthorUsername and ReactionsCount are derived fields filled in by the
// repository when reading (a JOIN against users and a COUNT against
// reactions); they have no column of their own.
type Story struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	ReactionsCount int       `json:"reactions_count"`
}

// Reaction marks that a user liked a story. The reactions table carries a
// UNIQUE(user_id, story_id) constraint: one reaction per user per story.
type Reaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	StoryID   string    `json:"story"`
	CreatedAt time.Time `json:"created_at"`
}
