package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rydio/api/internal/catalog"
	"github.com/rydio/api/internal/config"
	"github.com/rydio/api/internal/database"
	"github.com/rydio/api/internal/handlers"
	"github.com/rydio/api/internal/middleware"
	"github.com/rydio/api/internal/personalization"
	"github.com/rydio/api/internal/recommendation"
	"github.com/rydio/api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	logger.Info("rydio recommendation API starting",
		zap.String("version", "0.1.0"),
		zap.String("environment", cfg.Environment),
	)

	shutdownTelemetry, err := telemetry.InitTracer(ctx, "rydio-reco-api")
	if err != nil {
		// Collector may be down; tracing is not worth refusing to boot for
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(ctx); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// The catalog is a hard dependency; refuse to start without it.
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis only backs the personalization cache, which is best-effort.
	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, personalization cache disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	catalogRepo := catalog.NewRepository(db.Pool(), logger)
	snapshots := catalog.NewSnapshotProvider(catalogRepo, cfg.CatalogCacheTTL, cfg.CatalogTimeout, logger)

	natsConn, err := nats.Connect(cfg.NATSURL,
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		logger.Warn("NATS unavailable, catalog refresh falls back to TTL only", zap.Error(err))
		natsConn = nil
	} else {
		defer natsConn.Close()
		if _, err := snapshots.SubscribeRefresh(natsConn); err != nil {
			logger.Warn("failed to subscribe to catalog refresh", zap.Error(err))
		}
	}

	var profileCache *redis.Client
	if rdb != nil {
		profileCache = rdb.Client()
	}
	profiles := personalization.NewService(db.Pool(), profileCache, cfg.ProfileCacheTTL, cfg.ProfileTimeout, logger)

	engine := recommendation.NewEngine(snapshots, profiles, recommendation.DefaultWeights, cfg.MaxRecommendations, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	healthHandler := handlers.NewHealthHandler(db, rdb, natsConn)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/deep", healthHandler.DeepHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	recoHandler := handlers.NewRecommendationHandler(engine, profiles, logger)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimiter))
	{
		reco := v1.Group("/recommendations")
		reco.Use(middleware.OptionalAuth(cfg.JWTSecret))
		{
			reco.POST("/smart", recoHandler.Smart)
			reco.GET("/quick", recoHandler.Quick)
			reco.GET("/add-ons", recoHandler.AddOns)
		}
		v1.GET("/recommendations/personalized-insight",
			middleware.Auth(cfg.JWTSecret), recoHandler.PersonalizedInsight)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
