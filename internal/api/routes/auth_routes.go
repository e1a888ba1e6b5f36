package routes

import (
	"job-board-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and session routes under /auth.
func RegisterAuthRoutes(
	rg *gin.RouterGroup,
	userHandler handlers.UserHandlerInterface,
	authMiddleware, validate, loginLimit gin.HandlerFunc,
) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", validate, userHandler.Register)
		auth.POST("/login", loginLimit, validate, userHandler.Login)
		auth.GET("/verify", authMiddleware, validate, userHandler.Verify)
		auth.POST("/logout", authMiddleware, validate, userHandler.Logout)
	}
}
