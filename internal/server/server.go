// Package server is the composition root: it wires the repository,
// services, handlers, and middleware into a chi router and owns the HTTP
// server lifecycle.
//
// DEPENDENCY FLOW:
//
//	config.Config → sqlite.DB → services → handlers → routes
//
// Handlers never touch the database; services never touch HTTP. All
// wiring happens in New/setupRoutes, nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dereden/bloglist/internal/auth"
	"github.com/dereden/bloglist/internal/config"
	"github.com/dereden/bloglist/internal/handler"
	"github.com/dereden/bloglist/internal/middleware"
	sqliteRepo "github.com/dereden/bloglist/internal/repository/sqlite"
	"github.com/dereden/bloglist/internal/service"
)

// Server holds the router and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, builds the token and password
// services, and wires every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
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

// Handler exposes the router, mainly for httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures middleware, services, handlers, and the route
// table.
//
// ROUTE STRUCTURE:
//
//	GET    /api/blogs          → list blogs (public)
//	GET    /api/blogs/{id}     → get blog (public)
//	POST   /api/blogs          → create blog        [auth]
//	PUT    /api/blogs/{id}     → update blog        [auth]
//	DELETE /api/blogs/{id}     → delete blog        [auth]
//	POST   /api/users          → register (public)
//	GET    /api/users          → list users (public)
//	GET    /api/users/{id}     → get user (public)
//	POST   /api/login          → login (public)
//	POST   /test/reset         → wipe storage       [test mode ONLY]
//	*                          → SPA static files, if STATIC_DIR exists
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	userService := service.NewUserService(s.db.Users(), passwords, s.logger)
	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	blogService := service.NewBlogService(s.db.Blogs(), s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	blogHandler := handler.NewBlogHandler(blogService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/blogs", blogHandler.HandleList)
		r.Get("/blogs/{id}", blogHandler.HandleGetByID)

		// Mutations require a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/blogs", blogHandler.HandleCreate)
			r.Put("/blogs/{id}", blogHandler.HandleUpdate)
			r.Delete("/blogs/{id}", blogHandler.HandleDelete)
		})

		r.Post("/users", userHandler.HandleRegister)
		r.Get("/users", userHandler.HandleList)
		r.Get("/users/{id}", userHandler.HandleGetByID)

		r.Post("/login", authHandler.HandleLogin)
	})

	// The reset endpoint exists only in test mode. Production builds have
	// no route that can wipe the database.
	if s.config.TestMode {
		resetHandler := handler.NewTestResetHandler(s.db, s.logger)
		s.router.Post("/test/reset", resetHandler.HandleReset)
		s.logger.Warn("test mode: /test/reset endpoint mounted")
	}

	s.setupStatic()

	return nil
}

// setupStatic serves the frontend build directory with an index.html
// fallback for client-side routes. Skipped entirely when the directory is
// absent (API-only deployments, tests).
func (s *Server) setupStatic() {
	staticDir := s.config.StaticDir
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		return
	}

	fileServer := http.FileServer(http.Dir(staticDir))
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || strings.HasPrefix(r.URL.Path, "/api") {
			http.NotFound(w, r)
			return
		}

		// Serve the file when it exists, otherwise fall back to
		// index.html so the SPA router can handle the path.
		path := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, and close the database last (flushes the WAL).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.Bool("testMode", s.config.TestMode),
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
