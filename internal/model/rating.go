package model

// WebsiteRating is a user's star rating of the site itself. Exactly one row
// per user, created lazily with rating 0 on first access.
type WebsiteRating struct {
	UserID string `json:"-"`
	Rating int    `json:"rating"`
}
