package routes

import (
	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to jobs.
// Browsing is public; everything that changes a posting requires an employer token.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	owners middleware.JobOwnershipChecker,
	authMiddleware, validate gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", validate, jobHandler.ListJobs)
		jobs.GET("/search", validate, jobHandler.ListJobs)
		jobs.GET("/:id", validate, jobHandler.GetJobByID)
	}

	employer := rg.Group("/jobs", authMiddleware, middleware.RequireRole(models.RoleEmployer), validate)
	{
		employer.GET("/mine", jobHandler.ListMyJobs)
		employer.POST("", jobHandler.CreateJob)
		employer.PUT("/:id", middleware.RequireJobOwner(owners, "id"), jobHandler.UpdateJob)
		employer.DELETE("/:id", middleware.RequireJobOwner(owners, "id"), jobHandler.DeleteJob)
	}
}
