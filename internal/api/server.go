// Package api provides the HTTP API server and handlers for the EditorCraft application.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/editorcraftapp/editorcraft-server/internal/config"
	"github.com/editorcraftapp/editorcraft-server/internal/http/response"
	"github.com/editorcraftapp/editorcraft-server/internal/ratelimit"
	"github.com/editorcraftapp/editorcraft-server/internal/service"
	"github.com/editorcraftapp/editorcraft-server/internal/store"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Auth    *service.AuthService
	Editor  *service.EditorService
	Content *service.ContentService
	Upload  *service.UploadService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *ratelimit.KeyedRateLimiter
	maxFileSize     int64
	maxBatchSize    int
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:        st,
		services:     services,
		router:       chi.NewRouter(),
		logger:       logger,
		maxFileSize:  cfg.Upload.MaxFileSize,
		maxBatchSize: cfg.Upload.MaxBatchSize,
		// 20 auth attempts per minute per IP, small burst.
		authRateLimiter: ratelimit.New(20.0/60.0, 10),
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("EditorCraft API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerEditorRoutes()
	s.registerConfigRoutes()
	s.registerUploadRoutes()
	s.registerAssetRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Server.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(s.authRateLimit)
}

// authRateLimit applies the per-IP rate limit on credential endpoints. The
// key is the request's RemoteAddr, which RealIP has already resolved from
// trusted forwarding headers where present.
func (s *Server) authRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost &&
			(r.URL.Path == "/api/auth/register" || r.URL.Path == "/api/auth/login") {
			key := r.RemoteAddr
			if host, _, err := net.SplitHostPort(key); err == nil {
				key = host
			}
			if !s.authRateLimiter.Allow(key) {
				s.logger.Warn("auth rate limit exceeded", "ip", key)
				response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// === Health ===

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status string `json:"status" doc:"Health status"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, s.handleHealth)
}

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: HealthResponse{Status: "OK"}}, nil
}
