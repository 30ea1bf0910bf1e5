// Package main is the entry point for the box picking service.
// It wires the box catalog, the packing oracle adapter, the heuristic
// fallback, the result cache, and the HTTP surface into one process.
//
// 12-Factor App compliance:
//   - I. Codebase: Single codebase tracked in version control
//   - II. Dependencies: Managed via go.mod
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes (all state in the database)
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run cmd/api-gateway/main.go
//
// Environment Variables:
//
//	BPS_ENVIRONMENT       - Deployment environment (development, staging, production)
//	BPS_SERVER_PORT       - HTTP server port (default: 8080)
//	BPS_ORACLE_USERNAME   - Packing oracle account
//	BPS_ORACLE_API_KEY    - Packing oracle API key
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/application/service"
	"github.com/hapkiduki/boxpick-go/internal/infrastructure/config"
	"github.com/hapkiduki/boxpick-go/internal/infrastructure/packing"
	sqlitestore "github.com/hapkiduki/boxpick-go/internal/infrastructure/persistance/sqlite"
	"github.com/hapkiduki/boxpick-go/internal/interfaces/http/handler"
	"github.com/hapkiduki/boxpick-go/internal/interfaces/http/middleware"
	"github.com/hapkiduki/boxpick-go/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

// startTime tracks when the server started for uptime calculations
var startTime = time.Now()

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer log.Sync()

	log.Info("Starting Box Picking Service",
		"version", version,
		"environment", cfg.App.Environment,
		"packing_mode", cfg.Packing.Mode,
	)

	// Create context that listens for shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logAdapter := &loggerAdapter{log}

	// Open the embedded store
	db, err := sqlitestore.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database", "path", cfg.Database.Path, "error", err)
	}
	defer db.Close()

	// Build the resolution engine
	boxRepo := sqlitestore.NewBoxRepository(db)
	cacheRepo := sqlitestore.NewPackingCacheRepository(db)
	checker := buildChecker(cfg, cacheRepo, logAdapter)
	resolver := service.NewResolver(boxRepo, checker, cacheRepo, cfg.Packing.PageSize, logAdapter)

	packingHandler := handler.NewPackingHandler(resolver, logAdapter)
	boxHandler := handler.NewBoxHandler(boxRepo, logAdapter)

	// Create Chi router
	r := chi.NewRouter()

	// Middleware stack; order matters.
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logAdapter))
	r.Use(middleware.Recoverer(logAdapter))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-API-Version"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimiter(middleware.DefaultRateLimiterConfig()))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.APIVersion(version))
	r.Use(middleware.ContentTypeJSON)

	// Routes
	r.Get("/health", healthHandler(db))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/packing/resolve", packingHandler.Resolve)
		r.Post("/boxes", boxHandler.Create)
		r.Get("/boxes/{id}", boxHandler.GetByID)
	})

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server shutdown complete")
}

// buildChecker selects the packability checker wiring from configuration.
// The choice is an explicit constructor-time decision; nothing downstream
// consults ambient flags.
func buildChecker(cfg *config.Config, cacheRepo *sqlitestore.PackingCacheRepository, log port.Logger) port.PackabilityChecker {
	oracleCfg := packing.OracleConfig{
		Endpoint: cfg.Oracle.Endpoint,
		Username: cfg.Oracle.Username,
		APIKey:   cfg.Oracle.APIKey,
		Timeout:  cfg.Oracle.Timeout,
	}

	switch cfg.Packing.Mode {
	case "oracle":
		return packing.NewOracleChecker(oracleCfg, cacheRepo, log)
	case "heuristic":
		return packing.NewHeuristicChecker()
	default:
		return packing.NewResilientChecker(
			packing.NewOracleChecker(oracleCfg, cacheRepo, log),
			packing.NewHeuristicChecker(),
			log,
		)
	}
}

// healthHandler returns the health check handler.
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		dbStatus := "healthy"
		code := http.StatusOK

		if err := db.PingContext(r.Context()); err != nil {
			status = "unhealthy"
			dbStatus = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  status,
			"version": version,
			"uptime":  time.Since(startTime).String(),
			"checks": map[string]interface{}{
				"database": map[string]string{"status": dbStatus},
			},
		})
	}
}

// notFoundHandler handles 404 responses.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    "NOT_FOUND",
			"message": "The requested resource was not found",
		},
	})
}

// methodNotAllowedHandler handles 405 responses.
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    "METHOD_NOT_ALLOWED",
			"message": "The requested method is not allowed for this resource",
		},
	})
}

// loggerAdapter adapts the logger.Logger to the port.Logger interface.
type loggerAdapter struct {
	*logger.Logger
}

// Debug implements port.Logger.
func (l *loggerAdapter) Debug(msg string, keysAndValues ...any) {
	l.Logger.Debug(msg, keysAndValues...)
}

// Info implements port.Logger.
func (l *loggerAdapter) Info(msg string, keysAndValues ...any) {
	l.Logger.Info(msg, keysAndValues...)
}

// Warn implements port.Logger.
func (l *loggerAdapter) Warn(msg string, keysAndValues ...any) {
	l.Logger.Warn(msg, keysAndValues...)
}

// Error implements port.Logger.
func (l *loggerAdapter) Error(msg string, keysAndValues ...any) {
	l.Logger.Error(msg, keysAndValues...)
}

// With implements port.Logger.
func (l *loggerAdapter) With(keysAndValues ...any) port.Logger {
	return &loggerAdapter{l.Logger.With(keysAndValues...)}
}

// WithContext implements port.Logger.
func (l *loggerAdapter) WithContext(ctx context.Context) port.Logger {
	return &loggerAdapter{l.Logger.WithContext(ctx)}
}
