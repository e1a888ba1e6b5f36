package handlers

import (
	"net/http"

	"job-board-api/internal/api/apierror"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler holds dependencies for application operations.
type ApplicationHandler struct {
	service services.ApplicationService
	stats   services.StatsService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, stats services.StatsService) *ApplicationHandler {
	return &ApplicationHandler{service: service, stats: stats}
}

// CreateApplication godoc
// @Summary      Apply to a job
// @Description  Creates a pending application for the authenticated job seeker.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application body      dto.CreateApplicationRequest true "Application"
// @Success      201 {object}  dto.ApplicationResponse
// @Failure      400 {object}  map[string]string "Validation failed"
// @Failure      403 {object}  map[string]string "Cannot apply to own job"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      409 {object}  map[string]string "Already applied"
// @Failure      429 {object}  map[string]string "Too many applications"
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "Invalid request body", err)
		return
	}

	app, err := h.service.Apply(c.Request.Context(), actor, &req)
	if err != nil {
		apierror.Respond(c, err, "create application")
		return
	}
	c.JSON(http.StatusCreated, MapApplicationToResponse(app))
}

// ListMyApplications godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Success      200 {array}   dto.ApplicationResponse
// @Router       /applications/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	apps, err := h.service.ListForJobSeeker(c.Request.Context(), actor)
	if err != nil {
		apierror.Respond(c, err, "list my applications")
		return
	}
	c.JSON(http.StatusOK, MapApplicationsToResponse(apps))
}

// ListEmployerApplications godoc
// @Summary      List applications received on my jobs
// @Tags         applications
// @Produce      json
// @Success      200 {array}   dto.ApplicationResponse
// @Router       /applications/employer/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListEmployerApplications(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	apps, err := h.service.ListForEmployer(c.Request.Context(), actor)
	if err != nil {
		apierror.Respond(c, err, "list employer applications")
		return
	}
	c.JSON(http.StatusOK, MapApplicationsToResponse(apps))
}

// ListJobApplications godoc
// @Summary      List applications for one of my jobs
// @Tags         applications
// @Produce      json
// @Param        jobId path      string true "Job ID" Format(uuid)
// @Success      200 {array}   dto.ApplicationResponse
// @Failure      403 {object}  map[string]string "Not the job poster"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /applications/job/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	jobID, ok := middleware.ParseUUIDParam(c, "jobId", "Invalid job ID format")
	if !ok {
		return
	}

	apps, err := h.service.ListForJob(c.Request.Context(), jobID)
	if err != nil {
		apierror.Respond(c, err, "list job applications")
		return
	}
	c.JSON(http.StatusOK, MapApplicationsToResponse(apps))
}

// GetApplication godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id path      string true "Application ID" Format(uuid)
// @Success      200 {object}  dto.ApplicationResponse
// @Failure      403 {object}  map[string]string "Not the applicant or job poster"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	appID, ok := middleware.ParseUUIDParam(c, "id", "Invalid application ID format")
	if !ok {
		return
	}

	app, err := h.service.GetByID(c.Request.Context(), actor, appID)
	if err != nil {
		apierror.Respond(c, err, "get application")
		return
	}
	c.JSON(http.StatusOK, MapApplicationToResponse(app))
}

// UpdateApplicationStatus godoc
// @Summary      Change the status of an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path      string                              true "Application ID" Format(uuid)
// @Param        status body      dto.UpdateApplicationStatusRequest  true "New status"
// @Success      200 {object}  dto.ApplicationResponse
// @Failure      400 {object}  map[string]string "Invalid status value"
// @Failure      403 {object}  map[string]string "Not the job poster"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	appID, ok := middleware.ParseUUIDParam(c, "id", "Invalid application ID format")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "Invalid request body", err)
		return
	}

	app, err := h.service.UpdateStatus(c.Request.Context(), actor, appID, req.Status)
	if err != nil {
		apierror.Respond(c, err, "update application status")
		return
	}
	c.JSON(http.StatusOK, MapApplicationToResponse(app))
}

// DeleteApplication godoc
// @Summary      Delete an application
// @Tags         applications
// @Produce      json
// @Param        id path      string true "Application ID" Format(uuid)
// @Success      200 {object}  map[string]string
// @Failure      403 {object}  map[string]string "Not the applicant or job poster"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	appID, ok := middleware.ParseUUIDParam(c, "id", "Invalid application ID format")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), appID); err != nil {
		apierror.Respond(c, err, "delete application")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application removed"})
}

// JobSeekerStats godoc
// @Summary      Count my applications by status
// @Tags         applications
// @Produce      json
// @Success      200 {array}   dto.StatusCountResponse
// @Router       /applications/stats/jobseeker [get]
// @Security     BearerAuth
func (h *ApplicationHandler) JobSeekerStats(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	counts, err := h.stats.ForJobSeeker(c.Request.Context(), actor)
	if err != nil {
		apierror.Respond(c, err, "job seeker stats")
		return
	}
	c.JSON(http.StatusOK, MapStatusCountsToResponse(counts))
}

// EmployerStats godoc
// @Summary      Count applications received on my jobs by status
// @Tags         applications
// @Produce      json
// @Success      200 {array}   dto.StatusCountResponse
// @Router       /applications/stats/employer [get]
// @Security     BearerAuth
func (h *ApplicationHandler) EmployerStats(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	counts, err := h.stats.ForEmployer(c.Request.Context(), actor)
	if err != nil {
		apierror.Respond(c, err, "employer stats")
		return
	}
	c.JSON(http.StatusOK, MapStatusCountsToResponse(counts))
}
