package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/api"
	"github.com/sahilchouksey/unifriend-api/config"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/router"
	"github.com/sahilchouksey/unifriend-api/services/cron"
	"github.com/sahilchouksey/unifriend-api/utils/auth"
	"github.com/sahilchouksey/unifriend-api/utils/cache"
	"github.com/sahilchouksey/unifriend-api/utils/logger"
	"github.com/sahilchouksey/unifriend-api/utils/middleware"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	log := logger.New(getEnv.LOG_LEVEL, getEnv.IsProduction())

	if getEnv.FIREBASE_PROJECT_ID == "" {
		log.Warn("FIREBASE_PROJECT_ID is not set; token audience will not be checked")
	}

	store, err := database.Open(getEnv, log)
	if err != nil {
		log.Error("Check whether the Postgres is running or not (make docker-up / make db-up)")
		return err
	}

	if err := store.Init(); err != nil {
		log.WithError(err).Error("Failed to initialize database tables")
		return err
	}

	if getEnv.BOOTSTRAP_ADMIN_UID != "" {
		seeder := database.NewSeeder(store, log)
		if err := seeder.SeedBootstrapAdmin(context.Background(), getEnv.BOOTSTRAP_ADMIN_UID); err != nil {
			log.WithError(err).Error("Failed to seed bootstrap admin")
			return err
		}
	}

	metrics := middleware.NewMetrics()

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store, log, metrics.Registry())
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.WithError(err).Warn("Failed to start cron jobs")
			cronManager = nil
		}
	}

	// Redis is optional; without it rate limit counters stay in memory
	var limiterStorage fiber.Storage
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to Redis. Rate limit counters will be kept in memory.")
		} else {
			limiterStorage = cache.NewLimiterStorage(redisCache)
		}
	}

	// Defer Closing DB, Redis and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if limiterStorage != nil {
			limiterStorage.Close()
		}
		store.Close()
	}()

	keys := auth.NewRemoteKeySet(getEnv.IDENTITY_JWKS_URL, &http.Client{Timeout: 10 * time.Second})
	verifier := auth.NewJWTVerifier(keys, getEnv.IDENTITY_ISSUER, getEnv.FIREBASE_PROJECT_ID)

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), getEnv.BODY_LIMIT_MB, log)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Dependencies{
		Store:             store,
		Verifier:          verifier,
		Logger:            log,
		Metrics:           metrics,
		Environment:       getEnv.GO_ENV,
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_MAX,
		RateLimitWindow:   getEnv.RATE_LIMIT_WINDOW,
		RateLimitStorage:  limiterStorage,
		AccessLog:         true,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down API Server")
		if err := server.Shutdown(10 * time.Second); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}
