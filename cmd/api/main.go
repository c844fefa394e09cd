package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipzone-backend/config"
	"shipzone-backend/internal/delivery/http/middleware"
	v1 "shipzone-backend/internal/delivery/http/v1"
	"shipzone-backend/internal/domain"
	"shipzone-backend/internal/infrastructure/cache"
	"shipzone-backend/internal/infrastructure/events"
	"shipzone-backend/internal/infrastructure/methodtype"
	"shipzone-backend/internal/infrastructure/metrics"
	"shipzone-backend/internal/infrastructure/webhook"
	"shipzone-backend/internal/repository/memory"
	sqlcrepo "shipzone-backend/internal/repository/sqlc"
	"shipzone-backend/internal/usecase"
	"shipzone-backend/pkg/logger"
	"shipzone-backend/pkg/storage"
	"shipzone-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const serviceName = "shipzone-api"

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	ctx := context.Background()

	shutdownTracing, tracingEnabled := middleware.InitTracing(ctx, serviceName)

	// Storage: PostgreSQL via pgx/sqlc, or process memory when no DB_URL is set
	var (
		pgxPool   *pgxpool.Pool
		zoneRepo  domain.ZoneRepository
		settings  domain.SettingsStore
		txManager domain.TransactionManager
		backend   string
	)
	if cfg.DBUrl != "" {
		var err error
		pgxPool, err = sqlcrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		log.Info().Msg("Successfully connected to PostgreSQL via pgx/sqlc")
		txManager = sqlcrepo.NewTransactionManager(pgxPool)
		zoneRepo = sqlcrepo.NewZoneRepository(pgxPool, txManager)
		settings = sqlcrepo.NewSettingsStore(pgxPool)
		backend = "postgres"
	} else {
		log.Warn().Msg("DB_DSN not set, shipping data is kept in memory")
		store := memory.NewStore()
		zoneRepo, settings, txManager = store, store, memory.TxManager{}
		backend = "memory"
	}

	// Method types
	registry := methodtype.NewDefaultRegistry()
	if cfg.MethodTypesFile != "" {
		n, err := registry.LoadInto(cfg.MethodTypesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.MethodTypesFile).Msg("Failed to load method types")
		}
		log.Info().Int("count", n).Str("file", cfg.MethodTypesFile).Msg("Loaded method types")
	}

	// Initialize Cache (In-Memory)
	memCache := cache.NewMemoryCache(cfg.CacheZoneTTL, 2*cfg.CacheZoneTTL)

	// Metrics
	m := metrics.New(prometheus.DefaultRegisterer)

	// Events
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(events.LogSubscriber{})
	dispatcher.Subscribe(m)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = events.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error().Err(err).Msg("Redis unavailable, events will not be forwarded")
		} else {
			dispatcher.Subscribe(events.NewRedisPublisher(redisClient, cfg.EventsChannel))
			log.Info().Str("channel", cfg.EventsChannel).Msg("Forwarding shipping events to Redis")
		}
	}

	notifier := webhook.NewNotifier(cfg.WebhookURL, cfg.WebhookSecret, cfg.WebhookTimeout)
	if notifier != nil {
		dispatcher.Subscribe(notifier)
		log.Info().Msg("Webhook notifications enabled")
	}

	// --- Storage Module (R2) ---
	if cfg.ArchiveEnabled() {
		r2Storage, err := storage.NewR2Storage(
			ctx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		dispatcher.Subscribe(events.NewArchiveSubscriber(r2Storage, cfg.ArchivePrefix))
		log.Info().Str("bucket", cfg.R2BucketName).Msg("Archiving deleted shipping methods")
	}

	// --- Modules Initialization ---
	zoneUC := usecase.NewZoneUsecase(zoneRepo, registry, memCache, cfg)
	methodUC := usecase.NewZoneMethodUsecase(zoneUC, zoneRepo, settings, registry, dispatcher, txManager)
	typeUC := usecase.NewMethodTypeUsecase(registry, memCache, cfg)

	zoneHandler := v1.NewZoneHandler(zoneUC, cfg.PublicURL)
	methodHandler := v1.NewZoneMethodHandler(methodUC, cfg.PublicURL)
	typeHandler := v1.NewMethodTypeHandler(typeUC, cfg.PublicURL)

	// Set up Router
	mux := http.NewServeMux()

	// Shipping (Admin): AuthMiddleware -> AdminMiddleware -> Handler
	gate := func(h http.Handler) http.Handler {
		return middleware.Chain(h, middleware.AuthMiddleware, middleware.AdminMiddleware)
	}
	v1.RegisterShippingRoutes(mux, zoneHandler, methodHandler, typeHandler, gate)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := fmt.Sprintf(`{"status": "ok", "store": %q}`, backend)
		if pgxPool != nil {
			if err := pgxPool.Ping(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body = fmt.Sprintf(`{"status": "degraded", "store": %q}`, backend)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		ctx,
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	// CORS runs first, gzip wraps the handlers last
	handler := middleware.Chain(mux,
		middleware.NewCORSMiddleware(cfg),
		middleware.NewRequestLogger(m),
		rateLimiter.Middleware(),
		middleware.Tracing(tracingEnabled),
		middleware.Recover,
		gziphandler.GzipHandler,
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, "v1", cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Webhook deliveries still pending at shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Tracer shutdown failed")
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if pgxPool != nil {
		pgxPool.Close()
	}

	logger.ServiceStop(serviceName)
}
