package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const applicationColumns = `id, job_id, user_id, cover_letter, resume, status, created_at, updated_at`

// ApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) WithTx(tx pgx.Tx) *ApplicationRepo {
	return &ApplicationRepo{db: tx}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func applicationWhere(f storage.ApplicationFilter) whereBuilder {
	var where whereBuilder
	if f.UserID != uuid.Nil {
		where.add("user_id = ?", f.UserID)
	}
	if len(f.JobIDs) > 0 {
		where.add("job_id = ANY(?)", f.JobIDs)
	}
	return where
}

// Create inserts an application. The (job_id, user_id) unique constraint turns a
// concurrent duplicate into storage.ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	id := app.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
		INSERT INTO applications (id, job_id, user_id, cover_letter, resume, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + applicationColumns

	rows, err := r.db.Query(ctx, query, id, app.JobID, app.UserID, app.CoverLetter, app.Resume, app.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		switch pgErrorCode(err) {
		case codeUniqueViolation:
			return nil, fmt.Errorf("failed to create application: already exists for job %s: %w", app.JobID, storage.ErrConflict)
		case codeForeignKeyViolation:
			return nil, fmt.Errorf("failed to create application: job %s or user %s missing: %w", app.JobID, app.UserID, storage.ErrNotFound)
		}
		log.Printf("Error creating application: %v", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Debugf("Application created successfully with ID: %s", created.ID)
	return &created, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return r.getOne(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
}

func (r *ApplicationRepo) GetByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (*models.Application, error) {
	return r.getOne(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND user_id = $2`, jobID, userID)
}

func (r *ApplicationRepo) getOne(ctx context.Context, query string, args ...any) (*models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	app, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepo) List(ctx context.Context, f storage.ApplicationFilter) ([]models.Application, error) {
	where := applicationWhere(f)
	query := where.build(`SELECT `+applicationColumns+` FROM applications`, "created_at DESC, id DESC")

	rows, err := r.db.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	query := `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + applicationColumns
	rows, err := r.db.Query(ctx, query, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update application %s: %w", id, err)
	}
	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update application %s: %w", id, err)
	}
	return &updated, nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete applications for job %s: %w", jobID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *ApplicationRepo) CountByStatus(ctx context.Context, f storage.ApplicationFilter) ([]models.StatusCount, error) {
	where := applicationWhere(f)
	query := where.build(`SELECT status, COUNT(*) AS count FROM applications`, "") + ` GROUP BY status`

	rows, err := r.db.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.StatusCount])
	if err != nil {
		return nil, fmt.Errorf("failed to scan application counts: %w", err)
	}

	ordered := make([]models.StatusCount, 0, len(counts))
	for _, status := range models.ApplicationStatuses {
		for _, c := range counts {
			if c.Status == status {
				ordered = append(ordered, c)
			}
		}
	}
	return ordered, nil
}
