package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/handlers"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	config            *config.Config
	logger            *logger.Logger
	router            *mux.Router
	httpServer        *http.Server
	validationHandler *handlers.ValidationHandler
	connectionHandler *handlers.ConnectionHandler
	schemaHandler     *handlers.SchemaHandler
	mappingHandler    *handlers.MappingHandler
	healthHandler     *handlers.HealthHandler
	metrics           *handlers.Metrics
	adminAuth         *middleware.AdminAuthMiddleware
}

// NewServer creates a new HTTP server
func NewServer(
	config *config.Config,
	logger *logger.Logger,
	validationHandler *handlers.ValidationHandler,
	connectionHandler *handlers.ConnectionHandler,
	schemaHandler *handlers.SchemaHandler,
	mappingHandler *handlers.MappingHandler,
	healthHandler *handlers.HealthHandler,
	metrics *handlers.Metrics,
	adminAuth *middleware.AdminAuthMiddleware,
) *Server {
	server := &Server{
		config:            config,
		logger:            logger,
		router:            mux.NewRouter(),
		validationHandler: validationHandler,
		connectionHandler: connectionHandler,
		schemaHandler:     schemaHandler,
		mappingHandler:    mappingHandler,
		healthHandler:     healthHandler,
		metrics:           metrics,
		adminAuth:         adminAuth,
	}

	server.setupRoutes()
	server.setupHTTPServer()

	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health and metrics endpoints (no auth, scraped by infrastructure)
	s.router.HandleFunc("/health", s.healthHandler.HandleHealthCheck).Methods("GET")
	s.router.HandleFunc("/health/ready", s.healthHandler.HandleReadinessProbe).Methods("GET")
	s.router.HandleFunc("/health/live", s.healthHandler.HandleLivenessProbe).Methods("GET")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Stateless validation endpoints: evaluate whatever the request carries
	api.HandleFunc("/validation/compatibility", s.validationHandler.HandleCheckCompatibility).Methods("POST")
	api.HandleFunc("/validation/mapping", s.validationHandler.HandleValidateMapping).Methods("POST")
	api.HandleFunc("/validation/summary", s.validationHandler.HandleSummarize).Methods("POST")
	api.HandleFunc("/extraction/fields", s.validationHandler.HandleExtractFields).Methods("POST")

	// Connection profiles
	api.HandleFunc("/profiles", s.connectionHandler.HandleCreateProfile).Methods("POST")
	api.HandleFunc("/profiles", s.connectionHandler.HandleListProfiles).Methods("GET")
	api.HandleFunc("/profiles/{id}", s.connectionHandler.HandleGetProfile).Methods("GET")
	api.HandleFunc("/profiles/{id}", s.connectionHandler.HandleUpdateProfile).Methods("PUT")
	api.HandleFunc("/profiles/{id}", s.connectionHandler.HandleDeleteProfile).Methods("DELETE")

	// Schema snapshots
	api.HandleFunc("/profiles/{id}/schema", s.schemaHandler.HandleUploadSchema).Methods("PUT")
	api.HandleFunc("/profiles/{id}/schema", s.schemaHandler.HandleGetSchema).Methods("GET")

	// Persisted mappings and profile-level validation
	api.HandleFunc("/profiles/{id}/mappings", s.mappingHandler.HandleCreateMapping).Methods("POST")
	api.HandleFunc("/profiles/{id}/mappings", s.mappingHandler.HandleListMappings).Methods("GET")
	api.HandleFunc("/profiles/{id}/validation", s.mappingHandler.HandleValidateProfile).Methods("GET")
	api.HandleFunc("/mappings/{mappingId}", s.mappingHandler.HandleGetMapping).Methods("GET")
	api.HandleFunc("/mappings/{mappingId}", s.mappingHandler.HandleUpdateMapping).Methods("PUT")
	api.HandleFunc("/mappings/{mappingId}", s.mappingHandler.HandleDeleteMapping).Methods("DELETE")

	// The whole API surface sits behind the admin bearer token; an empty
	// configured hash disables the gate for local development
	api.Use(s.adminAuth.RequireAdminToken)

	s.router.Use(s.metrics.InstrumentHTTP)
	s.router.Use(middleware.CompressionMiddleware)
	s.router.Use(s.loggingMiddleware)
}

// setupHTTPServer configures the HTTP server
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.Server.IdleTimeout) * time.Second,
	}
}

// Router exposes the configured router for tests
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.WithError(err).Error("HTTP server error")
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	s.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      wrapped.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("HTTP request")
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
