package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is unexported so only this package can read or write identity
// values in a request context.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth enforces authentication on protected routes. It accepts the
// JWT either as an "Authorization: Bearer <token>" header (what the SPA
// sends) or as an HttpOnly "token" cookie (set by the OAuth callback), and
// stores the validated Identity in the request context. Missing or invalid
// tokens end the chain with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := extractIdentity(r, tokens)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "valid authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin enforces authentication AND the admin flag. Authenticated
// non-admins get 403, anonymous callers get 401.
func RequireAdmin(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := extractIdentity(r, tokens)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "valid authentication required")
				return
			}
			if !id.IsAdmin {
				writeAuthError(w, http.StatusForbidden, "admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the identity when a valid token is present but never
// blocks the request. Used on public read routes.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, err := extractIdentity(r, tokens); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

func extractIdentity(r *http.Request, tokens *TokenService) (Identity, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		if tokenStr, found := strings.CutPrefix(header, "Bearer "); found {
			return tokens.ValidateAccess(strings.TrimSpace(tokenStr))
		}
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		return Identity{}, err
	}
	return tokens.ValidateAccess(cookie.Value)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	errType := "unauthorized"
	if status == http.StatusForbidden {
		errType = "forbidden"
	}
	w.Write([]byte(`{"error":"` + errType + `","message":"` + message + `"}`))
}
