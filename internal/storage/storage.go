package storage

import (
	"context"

	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

// Store bundles the repositories of one persistence backend.
type Store interface {
	Users() UserRepository
	Jobs() JobRepository
	Applications() ApplicationRepository

	// DeleteJob removes the job together with its applications and reports how many
	// applications were removed. Returns ErrNotFound when the job does not exist.
	DeleteJob(ctx context.Context, jobID uuid.UUID) (int64, error)

	// Migrate creates the collections/tables and the indexes the repositories rely on,
	// including the unique (job, user) constraint on applications.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// UserRepository defines the interface for user data operations.
// Create returns ErrConflict when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs returns the users that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Job, error)
	// List returns jobs matching the filter, newest first.
	List(ctx context.Context, filter *dto.ListJobsRequest) ([]models.Job, error)
	ListIDsByPoster(ctx context.Context, posterID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationFilter narrows application queries. Zero values do not filter.
type ApplicationFilter struct {
	UserID uuid.UUID
	JobIDs []uuid.UUID
}

// ApplicationRepository defines the interface for application data operations.
// Create returns ErrConflict when an application for the same (job, user) pair exists.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (*models.Application, error)
	// List returns matching applications, newest first.
	List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
	// CountByStatus groups matching applications by status. Statuses without applications are omitted.
	CountByStatus(ctx context.Context, filter ApplicationFilter) ([]models.StatusCount, error)
}
