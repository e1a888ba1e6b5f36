package routes

import (
	"fmt"

	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/api/openapi"
	"job-board-api/internal/app"
	"job-board-api/internal/metrics"
	"job-board-api/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) error {
	doc, err := openapi.Load()
	if err != nil {
		return fmt.Errorf("loading API document: %w", err)
	}

	// --- Services ---
	userService := services.NewUserService(app.Store.Users(), app.Tokens, app.Validator)
	jobService := services.NewJobService(app.Store, app.Validator)
	applicationService := services.NewApplicationService(app.Store, app.Validator, app.ApplyLimiter)
	statsService := services.NewStatsService(app.Store)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, statsService)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Tokens, userService)
	var validate gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if app.Config.Server.ValidateRequests {
		validate = openapi.Validator(doc)
	} else {
		log.Warn("Request validation against the API document is disabled")
	}

	apiV1 := router.Group("/api/v1")
	RegisterAuthRoutes(apiV1, userHandler, authMiddleware, validate,
		middleware.RateLimit(app.LoginLimiter, "login", middleware.ClientIPKey))
	RegisterJobRoutes(apiV1, jobHandler, jobService, authMiddleware, validate)
	RegisterApplicationRoutes(apiV1, applicationHandler, applicationService, jobService, authMiddleware, validate)

	// --- Operational ---
	router.GET("/health", handlers.HealthCheck)
	router.GET("/health/ready", handlers.ReadinessCheck(app.Store))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	openapi.RegisterSwagger(doc)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return nil
}
