package handlers

import (
	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"
)

// MapUserToResponse converts a models.User to a dto.UserResponse
func MapUserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Company:   user.Company,
		CreatedAt: user.CreatedAt,
	}
}

func mapUserRef(ref *models.UserRef) dto.UserSummary {
	if ref == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{ID: ref.ID, Name: ref.Name, Email: ref.Email, Company: ref.Company}
}

// MapJobToResponse converts a models.JobDetail to a dto.JobResponse
func MapJobToResponse(job *models.JobDetail) dto.JobResponse {
	requirements := job.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	postedBy := dto.UserSummary{ID: job.PostedBy}
	if job.Poster != nil {
		postedBy = dto.UserSummary{ID: job.Poster.ID, Name: job.Poster.Name, Company: job.Poster.Company}
	}
	return dto.JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Type:         job.Type,
		Salary:       job.Salary,
		Description:  job.Description,
		Requirements: requirements,
		Category:     job.Category,
		PostedBy:     postedBy,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

func MapJobsToResponse(jobs []models.JobDetail) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, MapJobToResponse(&jobs[i]))
	}
	return out
}

// MapApplicationToResponse converts a models.ApplicationDetail to a dto.ApplicationResponse.
// Projections that were not resolved are reduced to their ID.
func MapApplicationToResponse(app *models.ApplicationDetail) dto.ApplicationResponse {
	job := dto.JobSummary{ID: app.JobID}
	if app.Job != nil {
		job = dto.JobSummary{ID: app.Job.ID, Title: app.Job.Title, Company: app.Job.Company, Location: app.Job.Location}
	}
	user := dto.UserSummary{ID: app.UserID}
	if app.Applicant != nil {
		user = mapUserRef(app.Applicant)
	}
	return dto.ApplicationResponse{
		ID:          app.ID,
		Job:         job,
		User:        user,
		CoverLetter: app.CoverLetter,
		Resume:      app.Resume,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

func MapApplicationsToResponse(apps []models.ApplicationDetail) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, MapApplicationToResponse(&apps[i]))
	}
	return out
}

func MapStatusCountsToResponse(counts []models.StatusCount) []dto.StatusCountResponse {
	out := make([]dto.StatusCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.StatusCountResponse{Status: c.Status, Count: c.Count})
	}
	return out
}
