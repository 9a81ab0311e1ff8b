// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses, services enforce the rules, the
// repository talks to the database. Services accept primitives and return
// domain models plus apperror values; they never see an *http.Request.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/apperror"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository"
)

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
)

// AuthService handles registration, login, and token refresh.
//
// Username/password is the primary identity. GitHub OAuth is a secondary
// path that upserts on the stable GitHub ID instead.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user with a freshly issued token pair so the
// handler can respond (or set cookies) in one step.
type AuthResult struct {
	User    *model.User
	Access  string
	Refresh string
}

// Register creates a user account and logs it in immediately.
// A taken username surfaces as apperror.ErrConflict from the repository.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", "password is too long")
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return s.issueTokens(user)
}

// Login verifies credentials and issues a token pair.
//
// Both an unknown username and a wrong password come back as the same
// Unauthorized error so the response does not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Unauthorized("Invalid username or password.")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid username or password.")
		}
		return nil, fmt.Errorf("service/auth: fetching user %q: %w", username, err)
	}

	if user.PasswordHash == "" {
		// OAuth-only account, no password to check.
		return nil, apperror.Unauthorized("Invalid username or password.")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("Invalid username or password.")
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, auth.Identity, error) {
	identity, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return "", auth.Identity{}, apperror.Unauthorized("Invalid or expired refresh token.")
	}

	access, err := s.tokens.GenerateAccess(identity)
	if err != nil {
		return "", auth.Identity{}, fmt.Errorf("service/auth: generating access token: %w", err)
	}
	return access, identity, nil
}

// GetUserByID returns the user record behind an authenticated identity.
// Used by the /api/users/me handler after the middleware validates the JWT.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	return s.users.GetUserByID(ctx, id)
}

// LoginOrRegisterGitHub completes the OAuth callback: upsert on the stable
// GitHub ID (insert on first login, refresh profile fields after) and issue
// a token pair. The stored username and admin flag stay authoritative.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	if ghUser == nil {
		return nil, fmt.Errorf("service/auth: GitHub user must not be nil")
	}

	user := &model.User{
		GitHubID:  ghUser.ID,
		Username:  ghUser.Login,
		Email:     ghUser.Email,
		AvatarURL: ghUser.AvatarURL,
	}
	if err := s.users.UpsertByGitHubID(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: upserting user (githubID=%d): %w", ghUser.ID, err)
	}

	s.logger.Info("user authenticated via GitHub",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *model.User) (*AuthResult, error) {
	identity := auth.Identity{UserID: user.ID, IsAdmin: user.IsAdmin}

	access, err := s.tokens.GenerateAccess(identity)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating access token for user %s: %w", user.ID, err)
	}
	refresh, err := s.tokens.GenerateRefresh(identity)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating refresh token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Access: access, Refresh: refresh}, nil
}
