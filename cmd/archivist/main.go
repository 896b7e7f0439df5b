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
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/config"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/db"
	dbRedis "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/db/redis"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
	logpkg "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/logger"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/metrics"
	archiverepo "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/repository/archive"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/repository/embcache"
	chiTransport "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/transport/chi"
	openaiEmb "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/transport/openai"
	classifyuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/classify"
	expanduc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/expand"
	healthuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/health"
	rankuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/rank"
	relevanceuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/relevance"
	searchuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/search"
	trustuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/trust"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting archivist API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("archive_base_url", cfg.Archive.BaseURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("embedding_enabled", cfg.Embedding.Enabled),
	)

	// Register domain metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterEmbeddingMetrics()

	ctx := context.Background()

	// Optional cache store
	var store db.Store
	if cfg.Cache.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
	}

	// Vocabulary, shared by every scoring service
	lex, err := lexicon.New(lexicon.Options{
		KeywordsPath: cfg.Lexicon.KeywordsPath,
		SynonymsPath: cfg.Lexicon.SynonymsPath,
	})
	if err != nil {
		logger.Fatal("Failed to load lexicon", zap.Error(err))
	}

	// Optional embedding provider for the re-rank step
	var embedder domain.Embedder
	if cfg.Embedding.Enabled {
		embedder = buildEmbedder(cfg.Embedding, store, cfg.Cache.KeyPrefix, logger)
		logger.Info("Embedding re-rank enabled",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}

	// Archive repository, cached when a store is configured
	var searcher searchuc.Archive
	client := archiverepo.NewClient(archiverepo.Config{
		BaseURL: cfg.Archive.BaseURL,
		Timeout: time.Duration(cfg.Archive.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	searcher = client
	if store != nil {
		searcher = archiverepo.NewCached(
			client, store, cfg.Cache.KeyPrefix,
			time.Duration(cfg.Archive.ResponseTTLSec)*time.Second, logger,
		)
	}

	// Use case services
	expandSvc := expanduc.New(lex)
	relevanceSvc := relevanceuc.New(lex)
	trustSvc := trustuc.New(lex, relevanceSvc)
	classifySvc := classifyuc.New(lex)
	rankSvc := rankuc.New(relevanceSvc, trustSvc, classifySvc, embedder, logger)
	searchSvc := searchuc.New(searcher, expandSvc, rankSvc).
		WithDefaults(mode.Mode(cfg.Search.DefaultMode), cfg.Archive.DefaultPageSize, cfg.Archive.MaxPageSize)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger, newEmbeddingHealthChecker(embedder))

	// Chi server
	server := chiTransport.NewServer(searchSvc, expandSvc, classifySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(requestIDMiddleware())
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

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

// buildEmbedder assembles the decorator chain: OpenAI -> Cached
func buildEmbedder(
	cfg config.EmbeddingConfig, store db.Store, keyPrefix string, logger *zap.Logger,
) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	if store == nil {
		return base
	}
	return embcache.New(base, store, keyPrefix, metrics.EmbeddingCacheTotal, logger)
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

// newEmbeddingHealthChecker returns nil (not a typed-nil wrapper) for a
// nil embedder so the health service skips the check entirely.
func newEmbeddingHealthChecker(embedder domain.Embedder) healthuc.EmbeddingChecker {
	if embedder == nil {
		return nil
	}
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// requestIDMiddleware propagates an incoming X-Request-ID or generates one.
func requestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx := context.WithValue(r.Context(), chiMiddleware.RequestIDKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
