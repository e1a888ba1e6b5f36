package services

import (
	"context"

	"job-board-api/internal/auth"
	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService defines the interface for account and session logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*Session, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// JobService defines the interface for job posting logic.
type JobService interface {
	Create(ctx context.Context, actor models.Actor, req *dto.CreateJobRequest) (*models.JobDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobDetail, error)
	List(ctx context.Context, req *dto.ListJobsRequest) ([]models.JobDetail, error)
	ListMine(ctx context.Context, actor models.Actor) ([]models.JobDetail, error)
	Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *dto.UpdateJobRequest) (*models.JobDetail, error)
	Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error
	// CheckOwnership fails with ErrNotFound or ErrForbidden unless actor posted the job.
	CheckOwnership(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

// ApplicationService defines the interface for the application lifecycle.
type ApplicationService interface {
	Apply(ctx context.Context, actor models.Actor, req *dto.CreateApplicationRequest) (*models.ApplicationDetail, error)
	GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id uuid.UUID, status string) (*models.ApplicationDetail, error)
	// AuthorizeDelete fails with ErrNotFound or ErrForbidden unless actor may delete the application.
	AuthorizeDelete(ctx context.Context, actor models.Actor, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForJobSeeker(ctx context.Context, actor models.Actor) ([]models.ApplicationDetail, error)
	ListForEmployer(ctx context.Context, actor models.Actor) ([]models.ApplicationDetail, error)
	ListForJob(ctx context.Context, jobID uuid.UUID) ([]models.ApplicationDetail, error)
}

// StatsService aggregates application counts by status.
type StatsService interface {
	ForJobSeeker(ctx context.Context, actor models.Actor) ([]models.StatusCount, error)
	ForEmployer(ctx context.Context, actor models.Actor) ([]models.StatusCount, error)
}
