package routes

import (
	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers the application lifecycle and statistics routes.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	appHandler handlers.ApplicationHandlerInterface,
	access middleware.ApplicationDeleteAuthorizer,
	owners middleware.JobOwnershipChecker,
	authMiddleware, validate gin.HandlerFunc,
) {
	jobSeeker := middleware.RequireRole(models.RoleJobSeeker)
	employer := middleware.RequireRole(models.RoleEmployer)

	apps := rg.Group("/applications", authMiddleware)
	{
		apps.POST("", jobSeeker, validate, appHandler.CreateApplication)
		apps.GET("/my-applications", jobSeeker, validate, appHandler.ListMyApplications)
		apps.GET("/stats/jobseeker", jobSeeker, validate, appHandler.JobSeekerStats)

		apps.GET("/employer/applications", employer, validate, appHandler.ListEmployerApplications)
		apps.GET("/stats/employer", employer, validate, appHandler.EmployerStats)
		apps.GET("/job/:jobId", employer, validate, middleware.RequireJobOwner(owners, "jobId"), appHandler.ListJobApplications)

		apps.GET("/:id", validate, appHandler.GetApplication)
		// Ownership is checked by the service after the status value.
		apps.PUT("/:id", employer, validate, appHandler.UpdateApplicationStatus)
		apps.DELETE("/:id", validate, middleware.RequireApplicationDeleteAccess(access, "id"), appHandler.DeleteApplication)
	}
}
