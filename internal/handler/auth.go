package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
)

// AuthHandler exposes registration, login, token refresh, and the GitHub
// OAuth flow.
type AuthHandler struct {
	auths  *service.AuthService
	github *auth.GitHubProvider
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. github may be nil when OAuth is not
// configured; the OAuth routes then respond 404.
func NewAuthHandler(auths *service.AuthService, github *auth.GitHubProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auths: auths, github: github, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the body returned by register and login.
type tokenResponse struct {
	Message string `json:"message"`
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
	IsAdmin bool   `json:"is_admin"`
}

// HandleRegister creates an account and logs it in.
//
// HTTP: POST /api/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auths.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		Message: "User registered successfully",
		Refresh: result.Refresh,
		Access:  result.Access,
		IsAdmin: result.User.IsAdmin,
	})
}

// HandleLogin verifies credentials and issues a token pair.
//
// HTTP: POST /api/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auths.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Message: "Login successful",
		Refresh: result.Refresh,
		Access:  result.Access,
		IsAdmin: result.User.IsAdmin,
	})
}

// HandleRefresh exchanges a refresh token for a new access token.
//
// HTTP: POST /api/token/refresh
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	access, identity, err := h.auths.Refresh(r.Context(), req.Refresh)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access":   access,
		"is_admin": identity.IsAdmin,
	})
}

// HandleMe returns the authenticated user's profile summary.
//
// HTTP: GET /api/users/me (RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	user, err := h.auths.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": user.Username,
		"is_staff": user.IsAdmin,
	})
}

// HandleLogout clears the JWT cookie used by the OAuth flow. Token-based
// clients just drop their tokens; the endpoint exists for browser sessions.
//
// HTTP: POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleGitHubLogin redirects the browser to GitHub's authorization page.
// The random state lands in a short-lived HttpOnly cookie and is verified on
// callback, so a forged callback can't complete the flow.
//
// HTTP: GET /auth/github/login
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	if h.github == nil {
		http.NotFound(w, r)
		return
	}

	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth flow: verify state, exchange the
// code, upsert the user, set the JWT cookie, redirect home.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	if h.github == nil {
		http.NotFound(w, r)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch or missing state cookie")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: user denied authorization", slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: GitHub exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.auths.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		h.logger.Error("auth callback: login failed",
			slog.Int64("githubID", ghUser.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	// Browser sessions carry the access token in an HttpOnly cookie; the
	// auth middleware reads it as a fallback to the Authorization header.
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    result.Access,
		Path:     "/",
		MaxAge:   int((15 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
