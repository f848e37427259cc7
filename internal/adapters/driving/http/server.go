package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
	"github.com/prospecta-labs/prospecta-core/internal/runtime"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService     driving.AuthService
	searchService   driving.SearchService
	leadService     driving.LeadService
	ingestService   driving.IngestService
	settingsService driving.SettingsService

	// Infrastructure
	config *runtime.Config // webhook secret lookup
	db     Pinger          // PostgreSQL health check
	queue  Pinger          // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	searchService driving.SearchService,
	leadService driving.LeadService,
	ingestService driving.IngestService,
	settingsService driving.SettingsService,
	runtimeConfig *runtime.Config,
	db Pinger,
	queue Pinger, // can be nil
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		authService:     authService,
		searchService:   searchService,
		leadService:     leadService,
		ingestService:   ingestService,
		settingsService: settingsService,
		config:          runtimeConfig,
		db:              db,
		queue:           queue,
	}

	s.setupRoutes()

	logging := NewLoggingMiddleware()
	recovery := NewRecoveryMiddleware()
	cors := NewCORSMiddleware([]string{"*"})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      recovery.Handler(logging.Handler(cors.Handler(s.router))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Setup endpoint (public, one-time use)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// User endpoints
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Search endpoints (authenticated)
	s.router.Handle("GET /api/v1/searches",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListSearches)))
	s.router.Handle("POST /api/v1/searches",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleStartSearch)))
	s.router.Handle("GET /api/v1/searches/{id}/leads",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListLeads)))
	s.router.Handle("POST /api/v1/searches/{id}/next-page",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleNextPage)))

	// Lead endpoints (authenticated)
	s.router.Handle("GET /api/v1/leads/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetLead)))
	s.router.Handle("POST /api/v1/leads/{id}/whatsapp",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleWhatsAppLink)))
	s.router.Handle("POST /api/v1/leads/{id}/email",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleEmailDraft)))
	s.router.Handle("POST /api/v1/leads/{id}/contact",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateContact)))
	s.router.Handle("DELETE /api/v1/leads/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteLead)))

	// Settings endpoints (authenticated)
	s.router.Handle("GET /api/v1/settings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSettings)))
	s.router.Handle("PUT /api/v1/settings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateSettings)))

	// Webhook endpoints (shared-secret auth, called by the scrape engine)
	s.router.Handle("POST /webhooks/leads",
		RequireWebhookSecret(leadSecretHeader, s.config.LeadWebhookSecret)(
			http.HandlerFunc(s.handleLeadWebhook)))
	s.router.Handle("POST /webhooks/search-update",
		RequireWebhookSecret(updateSecretHeader, s.config.UpdateWebhookSecret)(
			http.HandlerFunc(s.handleSearchUpdateWebhook)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
