package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/handler"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository/sqlite"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/stream"
)

// testEnv wires real services over an in-memory database behind the same
// route layout the server mounts, so requests pass through the auth
// middleware, the handlers, and persistence together.
type testEnv struct {
	t       *testing.T
	router  http.Handler
	runners *service.RunnerService
	quizzes *service.QuizService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService("handler-test-secret-0123456789")
	if err != nil {
		t.Fatalf("auth.NewTokenService() error = %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)
	hub := stream.NewHub(logger)

	authService := service.NewAuthService(db, tokens, passwords, logger)
	runnerService := service.NewRunnerService(db, logger)
	voteService := service.NewVoteService(db, db, hub, logger)
	quizService := service.NewQuizService(db, logger)
	mileageService := service.NewMileageService(db, logger)

	authHandler := handler.NewAuthHandler(authService, nil, logger)
	voteHandler := handler.NewVoteHandler(voteService, logger)
	quizHandler := handler.NewQuizHandler(quizService, logger)
	mileageHandler := handler.NewMileageHandler(mileageService, logger)

	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/token/refresh", authHandler.HandleRefresh)
		r.With(requireAuth).Get("/users/me", authHandler.HandleMe)

		r.With(requireAuth).Post("/vote", voteHandler.HandleCast)
		r.Get("/vote/results", voteHandler.HandleTally)

		r.Get("/quizzes/{id}", quizHandler.HandleGet)
		r.Post("/quizzes/submit", quizHandler.HandleSubmit)

		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Post("/mileage", mileageHandler.HandlePlan)
			r.Get("/mileage", mileageHandler.HandleLatest)
			r.Get("/mileage/history", mileageHandler.HandleHistory)
		})
	})

	return &testEnv{
		t:       t,
		router:  router,
		runners: runnerService,
		quizzes: quizService,
	}
}

// do sends a request through the router. token may be empty for anonymous
// requests.
func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// registerUser creates an account through the API and returns its access
// token.
func (e *testEnv) registerUser(username string) string {
	e.t.Helper()

	rr := e.do(http.MethodPost, "/api/register", `{"username":"`+username+`","password":"a strong password"}`, "")
	if rr.Code != http.StatusCreated {
		e.t.Fatalf("register %s: status = %d, body = %s", username, rr.Code, rr.Body.String())
	}

	var res struct {
		Access string `json:"access"`
	}
	decodeBody(e.t, rr, &res)
	return res.Access
}

// createRunner seeds a poll candidate directly through the service layer.
func (e *testEnv) createRunner(name string) string {
	e.t.Helper()

	runner, err := e.runners.Create(context.Background(), name, "https://example.com/"+name+".jpg", "", false, nil)
	if err != nil {
		e.t.Fatalf("creating runner %s: %v", name, err)
	}
	return runner.ID
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}
