package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const jobColumns = `id, title, company, location, type, salary, description, requirements, category, posted_by, created_at, updated_at`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo with the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) *JobRepo {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

// Create saves a new job posting.
func (r *JobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	id := job.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	requirements := job.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	query := `
		INSERT INTO jobs (id, title, company, location, type, salary, description, requirements, category, posted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + jobColumns

	rows, err := r.db.Query(ctx, query,
		id, job.Title, job.Company, job.Location, job.Type, job.Salary,
		job.Description, requirements, job.Category, job.PostedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return nil, fmt.Errorf("failed to create job: poster %s does not exist: %w", job.PostedBy, storage.ErrNotFound)
		}
		log.Printf("Error creating job: %v", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Debugf("Job created successfully with ID: %s", created.ID)
	return &created, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	job, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return &job, nil
}

func (r *JobRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1)`, ids)
}

// List retrieves jobs matching the search filters, newest first.
func (r *JobRepo) List(ctx context.Context, f *dto.ListJobsRequest) ([]models.Job, error) {
	var where whereBuilder
	if f != nil {
		if f.Search != "" {
			pattern := containsPattern(f.Search)
			where.add("(title ILIKE ? OR company ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
		}
		if f.Category != "" {
			where.add("category = ?", f.Category)
		}
		if f.Type != "" {
			where.add("type = ?", f.Type)
		}
		if f.Location != "" {
			where.add("location ILIKE ?", containsPattern(f.Location))
		}
		if f.PostedBy != uuid.Nil {
			where.add("posted_by = ?", f.PostedBy)
		}
	}

	query := where.build(`SELECT `+jobColumns+` FROM jobs`, "created_at DESC, id DESC")
	return r.query(ctx, query, where.args...)
}

func (r *JobRepo) query(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepo) ListIDsByPoster(ctx context.Context, posterID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM jobs WHERE posted_by = $1`, posterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job ids for %s: %w", posterID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan job ids: %w", err)
	}
	return ids, nil
}

// Update applies the non-nil fields of req.
func (r *JobRepo) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	var sets []string
	args := []any{id}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Location != nil {
		set("location", *req.Location)
	}
	if req.Type != nil {
		set("type", *req.Type)
	}
	if req.Salary != nil {
		set("salary", *req.Salary)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Requirements != nil {
		set("requirements", *req.Requirements)
	}
	if req.Category != nil {
		set("category", *req.Category)
	}
	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE jobs SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + jobColumns
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update job %s: %w", id, err)
	}
	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update job %s: %w", id, err)
	}

	log.Debugf("Job updated successfully: %s", updated.ID)
	return &updated, nil
}

// Delete removes a job by its ID. Its applications go with it (ON DELETE CASCADE).
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
