package handlers

import (
	"net/http"

	"job-board-api/internal/api/apierror"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service services.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Lists jobs, newest first. Also served at /jobs/search.
// @Tags         jobs
// @Produce      json
// @Param        search   query     string false "Substring of title, company or description"
// @Param        category query     string false "Category"
// @Param        type     query     string false "Employment type"
// @Param        location query     string false "Substring of the location"
// @Success      200 {array}   dto.JobResponse
// @Failure      400 {object}  map[string]string "Invalid filter"
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierror.BadRequest(c, "Invalid query parameters", err)
		return
	}

	jobs, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		apierror.Respond(c, err, "list jobs")
		return
	}
	c.JSON(http.StatusOK, MapJobsToResponse(jobs))
}

// ListMyJobs godoc
// @Summary      List my jobs
// @Tags         jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse
// @Failure      403 {object}  map[string]string "Employers only"
// @Router       /jobs/mine [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	jobs, err := h.service.ListMine(c.Request.Context(), actor)
	if err != nil {
		apierror.Respond(c, err, "list my jobs")
		return
	}
	c.JSON(http.StatusOK, MapJobsToResponse(jobs))
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Tags         jobs
// @Produce      json
// @Param        id path      string true  "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetJobByID(c *gin.Context) {
	jobID, ok := middleware.ParseUUIDParam(c, "id", "Invalid job ID format")
	if !ok {
		return
	}

	job, err := h.service.GetByID(c.Request.Context(), jobID)
	if err != nil {
		apierror.Respond(c, err, "get job")
		return
	}
	c.JSON(http.StatusOK, MapJobToResponse(job))
}

// CreateJob godoc
// @Summary      Create a new job posting
// @Description  The company is taken from the employer's profile.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true  "Job details"
// @Success      201 {object}  dto.JobResponse
// @Failure      400 {object}  map[string]string "Validation failed"
// @Failure      403 {object}  map[string]string "Employers only"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "Invalid request body", err)
		return
	}

	job, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		apierror.Respond(c, err, "create job")
		return
	}
	c.JSON(http.StatusCreated, MapJobToResponse(job))
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id  path      string                true "Job ID" Format(uuid)
// @Param        job body      dto.UpdateJobRequest  true "Fields to change"
// @Success      200 {object}  dto.JobResponse
// @Failure      403 {object}  map[string]string "Not the owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	jobID, ok := middleware.ParseUUIDParam(c, "id", "Invalid job ID format")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "Invalid request body", err)
		return
	}

	job, err := h.service.Update(c.Request.Context(), actor, jobID, &req)
	if err != nil {
		apierror.Respond(c, err, "update job")
		return
	}
	c.JSON(http.StatusOK, MapJobToResponse(job))
}

// DeleteJob godoc
// @Summary      Delete a job posting and its applications
// @Tags         jobs
// @Produce      json
// @Param        id path      string true "Job ID" Format(uuid)
// @Success      200 {object}  map[string]string
// @Failure      403 {object}  map[string]string "Not the owner"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	jobID, ok := middleware.ParseUUIDParam(c, "id", "Invalid job ID format")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, jobID); err != nil {
		apierror.Respond(c, err, "delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job removed"})
}
