// Package server provides the HTTP REST API for the résumé tailoring service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/resumeforge/tailor/internal/config"
	"github.com/resumeforge/tailor/internal/db"
	"github.com/resumeforge/tailor/internal/embedding"
	"github.com/resumeforge/tailor/internal/pipeline"
	"github.com/resumeforge/tailor/internal/server/middleware"
	"github.com/resumeforge/tailor/internal/server/ratelimit"
)

// Server exposes the five routes of spec.md §6 over net/http, behind the
// teacher's CORS/rate-limit/logging middleware chain plus JWT auth.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	generator   *pipeline.Generator
	validate    *validator.Validate
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	logger      *slog.Logger
}

// Config holds server startup configuration.
type Config struct {
	Port           int
	DatabaseURL    string
	PipelineConfig *config.PipelineConfig
}

// New creates a new server instance, connecting to the database and wiring
// a pipeline.Generator from the given configuration.
func New(ctx context.Context, cfg Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var backend embedding.Backend
	if cfg.PipelineConfig.LLMAPIKey != "" {
		backend, err = embedding.NewGeminiBackend(ctx, cfg.PipelineConfig.LLMAPIKey, cfg.PipelineConfig.EmbeddingModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding backend: %w", err)
		}
	} else {
		backend = embedding.NewHashBackend()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	generator := pipeline.NewGenerator(database, backend, cfg.PipelineConfig, logger)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		db:          database,
		generator:   generator,
		validate:    validator.New(),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		jwtService:  NewJWTService(jwtConfig),
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("POST /api/jd/analyze", s.withAuth(http.HandlerFunc(s.handleAnalyzeJD)))
	mux.Handle("POST /api/resumes/generate", s.withAuth(http.HandlerFunc(s.handleGenerateResume)))
	mux.Handle("GET /api/resumes", s.withAuth(http.HandlerFunc(s.handleListResumes)))
	mux.Handle("GET /api/resumes/{id}", s.withAuth(http.HandlerFunc(s.handleGetResume)))
	mux.Handle("GET /api/resumes/{id}/download", s.withAuth(http.HandlerFunc(s.handleDownloadResume)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // long timeout for résumé generation
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded", "limit", info.Limit, "remaining", info.Remaining, "reset_at", info.ResetTime.Format(time.RFC3339))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
