package dto

import (
	"time"

	"job-board-api/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
// Company is taken from the employer's profile when it is set there.
type CreateJobRequest struct {
	Title        string          `json:"title" validate:"required,max=200"`
	Company      string          `json:"company" validate:"omitempty,max=200"`
	Location     string          `json:"location" validate:"required,max=200"`
	Type         models.JobType  `json:"type" validate:"required,job_type"`
	Salary       string          `json:"salary" validate:"required,max=100"`
	Description  string          `json:"description" validate:"required"`
	Requirements []string        `json:"requirements" validate:"omitempty,dive,required"`
	Category     models.Category `json:"category" validate:"required,job_category"`
}

// UpdateJobRequest carries a partial update; nil fields are left unchanged.
type UpdateJobRequest struct {
	Title        *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Location     *string          `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Type         *models.JobType  `json:"type,omitempty" validate:"omitempty,job_type"`
	Salary       *string          `json:"salary,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Requirements *[]string        `json:"requirements,omitempty" validate:"omitempty,dive,required"`
	Category     *models.Category `json:"category,omitempty" validate:"omitempty,job_category"`
}

// ListJobsRequest holds the optional search filters for listing jobs.
type ListJobsRequest struct {
	Search   string          `form:"search" validate:"omitempty,max=200"`
	Category models.Category `form:"category" validate:"omitempty,job_category"`
	Type     models.JobType  `form:"type" validate:"omitempty,job_type"`
	Location string          `form:"location" validate:"omitempty,max=200"`
	PostedBy uuid.UUID       `form:"-"` // Set internally for "my jobs"
}

// --- Job Response DTOs ---

type JobResponse struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Company      string          `json:"company"`
	Location     string          `json:"location"`
	Type         models.JobType  `json:"type"`
	Salary       string          `json:"salary"`
	Description  string          `json:"description"`
	Requirements []string        `json:"requirements"`
	Category     models.Category `json:"category"`
	PostedBy     UserSummary     `json:"postedBy"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// JobSummary is the projection of a job embedded in application responses.
type JobSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title,omitempty"`
	Company  string    `json:"company,omitempty"`
	Location string    `json:"location,omitempty"`
}
