// Package auth provides JWT issuance/validation, bcrypt password hashing,
// and the authentication middleware.
//
// The site issues two tokens on login/register, mirroring the frontend's
// expectations:
//
//   - access token: short-lived (15 min), sent as "Authorization: Bearer"
//     on API calls (an HttpOnly "token" cookie also works).
//   - refresh token: long-lived (7 days), exchanged at /api/token/refresh
//     for a fresh access token.
//
// Both carry the internal user ID in "sub" and the admin flag in "adm", so
// the middleware can authorize admin routes without a database lookup. A
// "typ" claim separates the two kinds; a refresh token is never accepted
// where an access token is expected, and vice versa.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer          = "runners-community"
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Identity is what a validated token asserts about its bearer.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// TokenService signs and verifies JWTs with an HMAC-SHA256 secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	Admin     bool   `json:"adm"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateAccess creates a signed short-lived access token.
func (s *TokenService) GenerateAccess(id Identity) (string, error) {
	return s.generate(id, typeAccess, accessTokenTTL)
}

// GenerateRefresh creates a signed long-lived refresh token.
func (s *TokenService) GenerateRefresh(id Identity) (string, error) {
	return s.generate(id, typeRefresh, refreshTokenTTL)
}

func (s *TokenService) generate(id Identity, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Admin:     id.IsAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// ValidateAccess parses and verifies an access token, returning the identity
// it asserts. Refresh tokens are rejected here.
func (s *TokenService) ValidateAccess(tokenStr string) (Identity, error) {
	return s.validate(tokenStr, typeAccess)
}

// ValidateRefresh parses and verifies a refresh token.
func (s *TokenService) ValidateRefresh(tokenStr string) (Identity, error) {
	return s.validate(tokenStr, typeRefresh)
}

func (s *TokenService) validate(tokenStr, wantType string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		// Pinning the algorithm prevents algorithm-confusion attacks.
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("auth: token expired")
		}
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("auth: invalid token claims")
	}
	if c.TokenType != wantType {
		return Identity{}, fmt.Errorf("auth: token type %q where %q is required", c.TokenType, wantType)
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("auth: token has no subject")
	}

	return Identity{UserID: c.Subject, IsAdmin: c.Admin}, nil
}
