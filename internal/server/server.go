// Package server wires the application together: it owns the router, the
// database connection, and the stats poller goroutine, and maps every
// route to its handler. main stays minimal — load config, build the
// external clients, hand them here.
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
	"github.com/go-chi/cors"

	"github.com/dontbanhemp/action-server/internal/auth"
	"github.com/dontbanhemp/action-server/internal/civic"
	"github.com/dontbanhemp/action-server/internal/config"
	"github.com/dontbanhemp/action-server/internal/handler"
	"github.com/dontbanhemp/action-server/internal/mailer"
	"github.com/dontbanhemp/action-server/internal/middleware"
	sqliteRepo "github.com/dontbanhemp/action-server/internal/repository/sqlite"
	"github.com/dontbanhemp/action-server/internal/service"
)

// Server is the HTTP server and all of its owned resources: the router,
// the database connection, and the stats poller. The poller runs in a
// goroutine that Start owns; shutdown cancels it before closing the
// database.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	poller *service.StatsPoller
}

// New builds the full dependency chain. The mailer is injected rather than
// constructed here so tests (and a future provider swap) don't drag AWS
// configuration into this package.
func New(cfg *config.Config, m mailer.Mailer, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(m); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes assembles services and handlers and binds them to routes.
//
// ROUTE STRUCTURE:
//
//	GET  /health                     → liveness check
//	POST /api/lookup                 → zip → senators + representative
//	POST /api/users                  → register a participant
//	POST /api/template               → render an email draft
//	POST /api/send                   → send the advocacy email
//	GET  /api/stats                  → cached campaign counters
//	GET  /api/countdown              → time until the ban
//	GET  /api/lawmakers/featured     → staff-featured lawmakers
//	POST /api/admin/login            → operator login        (if configured)
//	PATCH /api/admin/lawmakers/{id}  → curation update       (auth required)
func (s *Server) setupRoutes(m mailer.Mailer) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The site frontend is served from a separate static host, so every
	// API call is cross-origin.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// === Services ===
	civicClient := civic.NewClient(s.cfg.CivicAPIBaseURL, s.cfg.CivicAPIKey)
	lookupService := service.NewLookupService(civicClient, s.db, s.logger)
	userService := service.NewUserService(s.db, s.logger)
	templateService := service.NewTemplateService(s.db)
	dispatchService := service.NewDispatchService(s.db, s.db, s.db, m, s.cfg.SenderIdentity, s.logger)
	curationService := service.NewCurationService(s.db, s.logger)
	countdown := service.NewCountdown(s.cfg.CampaignDeadline)
	s.poller = service.NewStatsPoller(s.db, s.cfg.StatsPollInterval, s.logger)

	// === Handlers ===
	lookupHandler := handler.NewLookupHandler(lookupService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	templateHandler := handler.NewTemplateHandler(templateService, s.logger)
	sendHandler := handler.NewSendHandler(dispatchService, s.logger)
	campaignHandler := handler.NewCampaignHandler(s.poller, countdown, curationService, s.logger)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/lookup", lookupHandler.HandleLookup)
		r.Post("/users", userHandler.HandleCreate)
		r.Post("/template", templateHandler.HandleRender)
		r.Post("/send", sendHandler.HandleSend)
		r.Get("/stats", campaignHandler.HandleStats)
		r.Get("/countdown", campaignHandler.HandleCountdown)
		r.Get("/lawmakers/featured", campaignHandler.HandleFeatured)
	})

	// The curation API only exists when an operator credential is
	// configured; without one the public site runs as usual and these
	// routes 404.
	if s.cfg.AdminEnabled() {
		tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
		adminHandler := handler.NewAdminHandler(
			s.cfg.AdminEmail,
			s.cfg.AdminPasswordHash,
			auth.NewPasswordService(),
			tokens,
			curationService,
			s.logger,
		)

		s.router.Route("/api/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.HandleLogin)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Patch("/lawmakers/{id}", adminHandler.HandleUpdateLawmaker)
			})
		})
	} else {
		s.logger.Warn("admin credential not configured, curation API disabled")
	}

	return nil
}

// Router exposes the configured router for httptest-based tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests, stop the stats
// poller, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	// The poller's lifetime is tied to this context; cancelling it during
	// shutdown stops the ticker goroutine.
	pollCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	go s.poller.Run(pollCtx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
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
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
			slog.Time("campaignDeadline", s.cfg.CampaignDeadline),
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
