package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mythopedia-cloud/mythopedia/internal/config"
	dbRedis "github.com/mythopedia-cloud/mythopedia/internal/db/redis"
	logpkg "github.com/mythopedia-cloud/mythopedia/internal/logger"
	"github.com/mythopedia-cloud/mythopedia/internal/metrics"
	analyticsrepo "github.com/mythopedia-cloud/mythopedia/internal/repository/analytics"
	contentrepo "github.com/mythopedia-cloud/mythopedia/internal/repository/content"
	chiTransport "github.com/mythopedia-cloud/mythopedia/internal/transport/chi"
	analyticsuc "github.com/mythopedia-cloud/mythopedia/internal/usecase/analytics"
	healthuc "github.com/mythopedia-cloud/mythopedia/internal/usecase/health"
	searchuc "github.com/mythopedia-cloud/mythopedia/internal/usecase/search"
	"github.com/mythopedia-cloud/mythopedia/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting mythopedia API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Repositories
	contentRepo := contentrepo.New(store, cfg.Storage.KeyPrefix, logger)
	analyticsRepo := analyticsrepo.New(store, cfg.Storage.KeyPrefix)

	// Use case services
	analyticsSvc := analyticsuc.New(analyticsRepo, logger, analyticsuc.Config{
		HistorySize:   cfg.Analytics.HistorySize,
		NoResultsSize: cfg.Analytics.NoResultsSize,
	})
	analyticsSvc.Load(ctx)

	searchSvc := searchuc.New(contentRepo, analyticsSvc, logger, searchuc.Config{
		MinQueryLength:     cfg.Search.MinQueryLength,
		FuzzyThreshold:     cfg.Search.FuzzyThreshold,
		MaxResults:         cfg.Search.MaxResults,
		HighlightTag:       cfg.Search.HighlightTag,
		AutocompleteLimit:  cfg.Search.AutocompleteLimit,
		SuggestionMinScore: cfg.Search.SuggestionMinScore,
		CacheTTL:           time.Duration(cfg.Search.CacheTTLSec) * time.Second,
		CacheSize:          cfg.Search.CacheSize,
	})

	// Build the index up front so the first query does not pay for it.
	// A failure here is not fatal: the store may still be loading content,
	// and the first search retries the build.
	if err := searchSvc.Init(ctx); err != nil {
		logger.Warn("Initial index build failed, deferring to first search", zap.Error(err))
	} else {
		logger.Info("Search index ready", zap.Int("entries", searchSvc.EntryCount()))
	}

	healthSvc := healthuc.New(store, searchSvc)

	// HTTP server
	server := chiTransport.NewServer(searchSvc, analyticsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
