// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered community member.
//
// The primary identity is a unique username with a bcrypt password hash.
// GitHubID is only populated for accounts created through
// the GitHub OAuth login path, in which case PasswordHash stays empty.
//
// IsAdmin gates the admin-only surfaces (runner management, story deletion,
// timeline authoring). It travels in the JWT as the "adm" claim so the
// middleware can enforce it without a database lookup per request.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialized
	GitHubID     int64     `json:"-"` // 0 for password-only accounts
	Email        string    `json:"email,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
