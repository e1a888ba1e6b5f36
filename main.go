package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-board-api/config"
	"job-board-api/internal/app"
	"job-board-api/internal/auth"
	"job-board-api/internal/database"
	"job-board-api/internal/logging"
	"job-board-api/internal/ratelimit"
	"job-board-api/internal/server"
	"job-board-api/internal/validation"

	log "github.com/sirupsen/logrus"
)

// @title           Job Board API
// @version         1.0
// @description     Job postings, applications and their review workflow.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logging.Configure(cfg.Log); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	ctx := context.Background()

	store, err := database.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Storage.Driver, err)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if redisClient == nil {
		log.Warn("Redis not configured; token revocation and rate limits are local to this process")
	}

	application := &app.Application{
		Config:       cfg,
		Store:        store,
		RedisClient:  redisClient,
		Validator:    validation.New(),
		Tokens:       auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration, auth.NewRevoker(redisClient)),
		ApplyLimiter: ratelimit.New(redisClient, "ratelimit:apply:", cfg.RateLimit.ApplyLimit, cfg.RateLimit.ApplyWindow),
		LoginLimiter: ratelimit.New(redisClient, "ratelimit:login:", cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
	}

	srv, err := server.NewServer(application)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	// --- Graceful Shutdown Handling ---
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Infof("Received %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil {
			log.Errorf("Server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Errorf("Closing store: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorf("Closing Redis client: %v", err)
		}
	}

	log.Info("Application gracefully stopped.")
}
