package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/foliohq/folio/internal/audit"
	"github.com/foliohq/folio/internal/handler"
	"github.com/foliohq/folio/internal/openapi"
	"github.com/foliohq/folio/internal/server/middleware"
	"github.com/foliohq/folio/internal/service"
	"github.com/foliohq/folio/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	BaseURL         string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Allowlist restricts the admin surface by source address. A nil or
	// empty allowlist admits every address.
	Allowlist *middleware.Allowlist

	// Requests per minute per client IP. LoginRatePerMinute applies to the
	// login endpoint alone and is deliberately much tighter.
	RatePerMinute      int
	LoginRatePerMinute int
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:               "0.0.0.0",
		Port:               8080,
		ShutdownTimeout:    30 * time.Second,
		CORSOrigins:        []string{"*"},
		RatePerMinute:      120,
		LoginRatePerMinute: 5,
	}
}

// Server is the top-level HTTP server for folio. It owns the Chi router,
// the store, the authentication service, and the audit recorder.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	audit      *audit.Recorder
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server, wires up all routes and middleware, and returns
// it ready to listen. Call ListenAndServe to start accepting connections.
func New(cfg Config, st *store.Store, authSvc *service.AuthService, rec *audit.Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		audit:   rec,
		logger:  logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	// --- Health checks (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	// --- OpenAPI document (no auth required) ---
	openAPIDoc := openapi.Generate(s.baseURL())
	r.Get("/openapi.json", handler.NewOpenAPIHandler(openAPIDoc).ServeSpec)

	authH := handler.NewAuthHandler(s.store, s.authSvc, s.audit)
	contentH := handler.NewContentHandler(s.store)

	// --- API routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Public portfolio reads
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.cfg.RatePerMinute))

			r.Get("/projects", contentH.ListProjects)
			r.Get("/projects/{slug}", contentH.GetProject)
			r.Get("/skills", contentH.ListSkills)
			r.Get("/certificates", contentH.ListCertificates)
			r.Get("/education", contentH.ListEducation)

			// The contact form is the only public write.
			r.Post("/messages", contentH.CreateMessage)
		})

		// Admin surface. The allowlist gate comes first so a blocked
		// address can cause no side effects at all, not even a failed
		// login counter bump.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AllowOnly(s.cfg.Allowlist))

			// Login is unauthenticated but tightly throttled.
			r.Group(func(r chi.Router) {
				r.Use(middleware.LoginRateLimit(s.cfg.LoginRatePerMinute))
				r.Post("/session", authH.Login)
			})

			// Everything else requires a valid admin token.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(s.cfg.RatePerMinute))
				r.Use(middleware.Authenticate(s.authSvc))
				r.Use(middleware.RequireAdmin())

				r.Delete("/session", authH.Logout)
				r.Get("/account", authH.Account)
				r.Get("/audit", authH.AuditTrail)

				r.Post("/projects", contentH.CreateProject)
				r.Put("/projects/{id}", contentH.UpdateProject)
				r.Delete("/projects/{id}", contentH.DeleteProject)

				r.Post("/skills", contentH.CreateSkill)
				r.Put("/skills/{id}", contentH.UpdateSkill)
				r.Delete("/skills/{id}", contentH.DeleteSkill)

				r.Post("/certificates", contentH.CreateCertificate)
				r.Put("/certificates/{id}", contentH.UpdateCertificate)
				r.Delete("/certificates/{id}", contentH.DeleteCertificate)

				r.Post("/education", contentH.CreateEducation)
				r.Put("/education/{id}", contentH.UpdateEducation)
				r.Delete("/education/{id}", contentH.DeleteEducation)

				r.Get("/messages", contentH.ListMessages)
				r.Put("/messages/{id}/read", contentH.MarkMessageRead)
				r.Delete("/messages/{id}", contentH.DeleteMessage)
			})
		})
	})

	s.router = r
}

func (s *Server) baseURL() string {
	if s.cfg.BaseURL != "" {
		return s.cfg.BaseURL
	}
	return fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.Port)
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the database is
// reachable, 503 otherwise.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded","checks":{"database":"error"}}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","checks":{"database":"ok"}}`))
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or SIGTERM
// is received. It then performs a graceful shutdown, draining in-flight
// requests before returning.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
