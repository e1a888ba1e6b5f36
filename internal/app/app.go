package app

import (
	"job-board-api/config"
	"job-board-api/internal/auth"
	"job-board-api/internal/ratelimit"
	"job-board-api/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	Store       storage.Store
	RedisClient *redis.Client // nil when Redis is not configured
	Validator   *validator.Validate
	Tokens      *auth.TokenManager

	ApplyLimiter ratelimit.Limiter
	LoginLimiter ratelimit.Limiter
}
