// Package server provides the HTTP REST API for job-radar.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/advice"
	"github.com/jonathan/job-radar/internal/cache"
	"github.com/jonathan/job-radar/internal/config"
	"github.com/jonathan/job-radar/internal/db"
	"github.com/jonathan/job-radar/internal/fetch"
	"github.com/jonathan/job-radar/internal/ingest"
	"github.com/jonathan/job-radar/internal/llm"
	"github.com/jonathan/job-radar/internal/server/middleware"
	"github.com/jonathan/job-radar/internal/types"
)

// Store is the persistence surface the handlers depend on. *db.DB
// implements it; unit tests use an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, user *types.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	UpsertProfile(ctx context.Context, profile *types.Profile) error
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*types.Profile, error)

	ListVacancies(ctx context.Context, filters db.VacancyFilters) ([]types.Vacancy, error)
	GetVacancy(ctx context.Context, id uuid.UUID) (*types.Vacancy, error)

	CreateSource(ctx context.Context, source *types.SourceConfig) error
	GetSource(ctx context.Context, id uuid.UUID) (*types.SourceConfig, error)
	ListSources(ctx context.Context, enabledOnly bool) ([]types.SourceConfig, error)
	UpdateSource(ctx context.Context, source *types.SourceConfig) error
	DeleteSource(ctx context.Context, id uuid.UUID) error
	ListImportRuns(ctx context.Context, sourceID uuid.UUID, limit int) ([]types.ImportRun, error)

	ReplaceMatches(ctx context.Context, userID uuid.UUID, matches []types.Match) error
	ListMatches(ctx context.Context, userID uuid.UUID) ([]types.Match, error)
}

// Ingester runs one ingestion pass for a source. *ingest.Runner
// implements it.
type Ingester interface {
	IngestSource(ctx context.Context, source types.SourceConfig) (*types.ImportRun, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	store      Store
	database   *db.DB
	matchCache *cache.Cache
	ingester   Ingester
	advisor    *advice.Advisor
	locale     string

	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration.
type Config struct {
	Port        int
	DatabaseURL string
	RedisURL    string
	APIKey      string
	Locale      string
	UseBrowser  bool
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fetcher := fetch.NewClient(&fetch.Options{UseBrowser: cfg.UseBrowser})

	var llmClient llm.Client
	if cfg.APIKey != "" {
		llmClient, err = llm.NewGeminiClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	}

	s := &Server{
		store:      database,
		database:   database,
		matchCache: cache.Connect(ctx, cfg.RedisURL),
		ingester:   ingest.NewRunner(database, fetcher),
		advisor:    advice.NewAdvisor(llmClient),
		locale:     cfg.Locale,
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // ingestion passes can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes assembles the router with its middleware stack.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Everything below requires a bearer token.
	authed := http.NewServeMux()
	authed.HandleFunc("PUT /auth/password", s.handleUpdatePassword)

	authed.HandleFunc("GET /profile", s.handleGetProfile)
	authed.HandleFunc("PUT /profile", s.handlePutProfile)

	authed.HandleFunc("GET /vacancies", s.handleListVacancies)
	authed.HandleFunc("GET /vacancies/{id}", s.handleGetVacancy)
	authed.HandleFunc("GET /vacancies/{id}/skill-gap", s.handleSkillGap)

	authed.HandleFunc("POST /sources", s.handleCreateSource)
	authed.HandleFunc("GET /sources", s.handleListSources)
	authed.HandleFunc("GET /sources/{id}", s.handleGetSource)
	authed.HandleFunc("PUT /sources/{id}", s.handleUpdateSource)
	authed.HandleFunc("DELETE /sources/{id}", s.handleDeleteSource)
	authed.HandleFunc("GET /sources/{id}/runs", s.handleListImportRuns)
	authed.HandleFunc("POST /sources/{id}/ingest", s.handleIngestSource)

	authed.HandleFunc("GET /matches", s.handleListMatches)
	authed.HandleFunc("POST /matches/refresh", s.handleRefreshMatches)

	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("/", requireAuth(authed))

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
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

	s.matchCache.Close()
	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}
