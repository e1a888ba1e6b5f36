package dto

import (
	"time"

	"job-board-api/internal/models"

	"github.com/google/uuid"
)

// CreateApplicationRequest is the body of an application submission.
// JobID stays a string so a malformed identifier is reported after the structural checks.
type CreateApplicationRequest struct {
	JobID       string `json:"jobId" validate:"required"`
	CoverLetter string `json:"coverLetter" validate:"required"`
	Resume      string `json:"resume" validate:"required,url"`
}

// UpdateApplicationStatusRequest is the body of a status change.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
}

type ApplicationResponse struct {
	ID          uuid.UUID                `json:"id"`
	Job         JobSummary               `json:"job"`
	User        UserSummary              `json:"user"`
	CoverLetter string                   `json:"coverLetter"`
	Resume      string                   `json:"resume"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// StatusCountResponse is one row of the application statistics.
type StatusCountResponse struct {
	Status models.ApplicationStatus `json:"status"`
	Count  int64                    `json:"count"`
}
