// Package server wires the application together: database, services,
// handlers, middleware, and routes, plus startup and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/auth"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/handler"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/middleware"
	sqliteRepo "github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/repository/sqlite"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/service"
	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/stream"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// GitHub OAuth is optional; leave the client ID empty to disable it.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, token/password
// services, the results hub, domain services, handlers, and routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var github *auth.GitHubProvider
	if s.config.GitHubClientID != "" {
		github = auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
	}

	hub := stream.NewHub(s.logger)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	runnerService := service.NewRunnerService(s.db, s.logger)
	voteService := service.NewVoteService(s.db, s.db, hub, s.logger)
	quizService := service.NewQuizService(s.db, s.logger)
	mileageService := service.NewMileageService(s.db, s.logger)
	storyService := service.NewStoryService(s.db, s.logger)
	memeService := service.NewMemeService(s.db, s.logger)
	ratingService := service.NewRatingService(s.db, s.logger)
	timelineService := service.NewTimelineService(s.db, s.logger)
	statsService := service.NewStatsService(s.db, s.db, s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, github, s.logger)
	runnerHandler := handler.NewRunnerHandler(runnerService, s.logger)
	voteHandler := handler.NewVoteHandler(voteService, s.logger)
	quizHandler := handler.NewQuizHandler(quizService, s.logger)
	mileageHandler := handler.NewMileageHandler(mileageService, s.logger)
	storyHandler := handler.NewStoryHandler(storyService, s.logger)
	memeHandler := handler.NewMemeHandler(memeService, s.logger)
	ratingHandler := handler.NewRatingHandler(ratingService, s.logger)
	timelineHandler := handler.NewTimelineHandler(timelineService, s.logger)
	statsHandler := handler.NewStatsHandler(statsService, s.logger)

	requireAuth := auth.RequireAuth(tokens)
	requireAdmin := auth.RequireAdmin(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	// OAuth flow lives outside /api; it is browser navigation, not JSON.
	s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
	s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
	s.router.Post("/auth/logout", authHandler.HandleLogout)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/token/refresh", authHandler.HandleRefresh)
		r.With(requireAuth).Get("/users/me", authHandler.HandleMe)

		r.Get("/runners", runnerHandler.HandleList)
		r.Get("/runners/quiz", runnerHandler.HandleListQuiz)
		r.Get("/runners/{id}", runnerHandler.HandleGet)
		r.With(requireAuth).Post("/runners", runnerHandler.HandleCreate)
		r.With(requireAdmin).Put("/runners/{id}", runnerHandler.HandleUpdate)
		r.With(requireAdmin).Delete("/runners/{id}", runnerHandler.HandleDelete)

		r.With(requireAuth).Post("/vote", voteHandler.HandleCast)
		r.Get("/vote/results", voteHandler.HandleTally)
		r.Get("/vote/stream", voteHandler.HandleStream)

		r.Get("/quizzes", quizHandler.HandleList)
		r.Post("/quizzes/submit", quizHandler.HandleSubmit)
		r.Get("/quizzes/{id}", quizHandler.HandleGet)
		r.With(requireAdmin).Post("/quizzes", quizHandler.HandleCreateQuiz)
		r.With(requireAdmin).Post("/quizzes/{id}/questions", quizHandler.HandleCreateQuestion)
		r.With(requireAdmin).Post("/questions/{id}/answers", quizHandler.HandleCreateAnswer)

		// Anonymous mileage planning is allowed; results attach to the
		// caller when one is authenticated.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Post("/mileage", mileageHandler.HandlePlan)
			r.Get("/mileage", mileageHandler.HandleLatest)
			r.Get("/mileage/history", mileageHandler.HandleHistory)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/stories", storyHandler.HandleList)
			r.Post("/stories", storyHandler.HandleCreate)
			r.Get("/stories/search", storyHandler.HandleSearch)
			r.Post("/stories/{id}/react", storyHandler.HandleReact)
		})
		r.With(requireAdmin).Delete("/stories/{id}", storyHandler.HandleDelete)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/memes", memeHandler.HandleList)
			r.Post("/memes", memeHandler.HandleCreate)
			r.Get("/memes/{id}", memeHandler.HandleGet)
			r.Put("/memes/{id}", memeHandler.HandleUpdate)
			r.Delete("/memes/{id}", memeHandler.HandleDelete)
		})

		r.With(requireAuth).Get("/website-rating", ratingHandler.HandleGet)
		r.With(requireAuth).Post("/website-rating", ratingHandler.HandleSet)

		r.Get("/timeline", timelineHandler.HandleList)
		r.Get("/timeline/{id}", timelineHandler.HandleGetEvent)
		r.Get("/events/{id}/references", timelineHandler.HandleListReferences)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/timeline", timelineHandler.HandleCreateEvent)
			r.Put("/timeline/{id}", timelineHandler.HandleUpdateEvent)
			r.Delete("/timeline/{id}", timelineHandler.HandleDeleteEvent)
			r.Post("/events/{id}/references", timelineHandler.HandleCreateReference)
			r.Put("/references/{id}", timelineHandler.HandleUpdateReference)
			r.Delete("/references/{id}", timelineHandler.HandleDeleteReference)
		})

		r.Get("/stats", statsHandler.HandleGet)
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, give in-flight requests 30 seconds, close the
// database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.config.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the results stream holds its connection open
		// indefinitely and a write deadline would sever it.
		IdleTimeout: 60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
