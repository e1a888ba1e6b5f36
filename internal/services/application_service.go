package services

import (
	"context"
	"errors"
	"fmt"

	"job-board-api/internal/metrics"
	"job-board-api/internal/models"
	"job-board-api/internal/policy"
	"job-board-api/internal/ratelimit"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type applicationService struct {
	store     storage.Store
	validator *validator.Validate
	limiter   ratelimit.Limiter
}

// NewApplicationService creates a new instance of ApplicationService. A nil limiter
// leaves submissions unthrottled.
func NewApplicationService(store storage.Store, validate *validator.Validate, limiter ratelimit.Limiter) ApplicationService {
	return &applicationService{store: store, validator: validate, limiter: limiter}
}

// Apply submits an application for actor. The checks run in a fixed order because each one
// decides the reported error: input, job id, job existence, self-application, duplicate.
// Only a submission that passed all of them counts against the actor's rate limit.
func (s *applicationService) Apply(ctx context.Context, actor models.Actor, req *dto.CreateApplicationRequest) (*models.ApplicationDetail, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return nil, newValidationError("invalid job id", map[string]string{"jobId": "Field 'jobId' must be a valid identifier"})
	}

	job, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "fetching job for application")
	}

	if !policy.CanApply(actor, job) {
		metrics.RecordPolicyDenial("can_apply")
		return nil, fmt.Errorf("%w: cannot apply to own job", ErrForbidden)
	}

	if _, err := s.store.Applications().GetByJobAndUser(ctx, jobID, actor.ID); err == nil {
		return nil, fmt.Errorf("%w: already applied", ErrConflict)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, MapRepoError(err, "checking for existing application")
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, actor.ID.String()) {
		metrics.RecordRateLimited("apply")
		return nil, fmt.Errorf("%w: too many applications, please try again later", ErrRateLimited)
	}

	app, err := s.store.Applications().Create(ctx, &models.Application{
		JobID:       jobID,
		UserID:      actor.ID,
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
		Status:      models.ApplicationStatusPending,
	})
	if err != nil {
		// The unique (job, user) index catches a concurrent submission that passed the check above.
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: already applied", ErrConflict)
		}
		return nil, MapRepoError(err, "creating application")
	}
	metrics.RecordApplicationCreated()
	log.Debugf("ApplicationService: user %s applied to job %s (application %s)", actor.ID, jobID, app.ID)

	detail := &models.ApplicationDetail{Application: *app, Job: toJobRef(job)}
	if applicant, err := s.store.Users().GetByID(ctx, actor.ID); err == nil {
		detail.Applicant = toUserRef(applicant)
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("ApplicationService: Error loading applicant %s: %v", actor.ID, err)
	}
	return detail, nil
}

// load resolves an application and its job. The job is nil when it no longer exists.
func (s *applicationService) load(ctx context.Context, id uuid.UUID, op string) (*models.Application, *models.Job, error) {
	app, err := s.store.Applications().GetByID(ctx, id)
	if err != nil {
		return nil, nil, MapRepoError(err, op)
	}
	job, err := s.store.Jobs().GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return app, nil, nil
		}
		return nil, nil, MapRepoError(err, op)
	}
	return app, job, nil
}

// detail enriches a single application with its job and applicant projections.
func (s *applicationService) detail(ctx context.Context, app *models.Application, job *models.Job) *models.ApplicationDetail {
	detail := &models.ApplicationDetail{Application: *app}
	if job != nil {
		detail.Job = toJobRef(job)
	}
	applicant, err := s.store.Users().GetByID(ctx, app.UserID)
	switch {
	case err == nil:
		detail.Applicant = toUserRef(applicant)
	case !errors.Is(err, storage.ErrNotFound):
		log.Printf("ApplicationService: Error loading applicant %s: %v", app.UserID, err)
	}
	return detail
}

func (s *applicationService) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.ApplicationDetail, error) {
	app, job, err := s.load(ctx, id, "getting application")
	if err != nil {
		return nil, err
	}
	if !policy.CanViewApplication(actor, app, job) {
		metrics.RecordPolicyDenial("can_view_application")
		return nil, fmt.Errorf("%w: not authorized to view this application", ErrForbidden)
	}
	return s.detail(ctx, app, job), nil
}

// UpdateStatus validates the status before touching storage, then requires the actor to be the job's poster.
func (s *applicationService) UpdateStatus(ctx context.Context, actor models.Actor, id uuid.UUID, status string) (*models.ApplicationDetail, error) {
	if err := validateStruct(s.validator, &dto.UpdateApplicationStatusRequest{Status: status}); err != nil {
		return nil, err
	}
	newStatus, err := models.ParseApplicationStatus(status)
	if err != nil {
		return nil, newValidationError(err.Error(), map[string]string{
			"status": "Field 'status' must be one of: pending, reviewed, accepted, rejected",
		})
	}

	app, job, err := s.load(ctx, id, "getting application for status update")
	if err != nil {
		return nil, err
	}
	if !policy.CanMutateStatus(actor, app, job) {
		metrics.RecordPolicyDenial("can_mutate_status")
		return nil, fmt.Errorf("%w: only the job poster can update the application status", ErrForbidden)
	}

	updated, err := s.store.Applications().UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, MapRepoError(err, "updating application status")
	}
	metrics.RecordStatusUpdate(string(newStatus))
	return s.detail(ctx, updated, job), nil
}

func (s *applicationService) AuthorizeDelete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	app, job, err := s.load(ctx, id, "getting application for delete")
	if err != nil {
		return err
	}
	if !policy.CanDelete(actor, app, job) {
		metrics.RecordPolicyDenial("can_delete")
		return fmt.Errorf("%w: not authorized to delete this application", ErrForbidden)
	}
	return nil
}

// Delete removes the application. A record that is already gone counts as deleted.
func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Applications().Delete(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return MapRepoError(err, "deleting application")
	}
	return nil
}

func (s *applicationService) ListForJobSeeker(ctx context.Context, actor models.Actor) ([]models.ApplicationDetail, error) {
	apps, err := s.store.Applications().List(ctx, storage.ApplicationFilter{UserID: actor.ID})
	if err != nil {
		return nil, MapRepoError(err, "listing applications for job seeker")
	}
	return s.enrich(ctx, apps, true, false)
}

func (s *applicationService) ListForEmployer(ctx context.Context, actor models.Actor) ([]models.ApplicationDetail, error) {
	jobIDs, err := s.store.Jobs().ListIDsByPoster(ctx, actor.ID)
	if err != nil {
		return nil, MapRepoError(err, "listing employer jobs")
	}
	if len(jobIDs) == 0 {
		return []models.ApplicationDetail{}, nil
	}

	apps, err := s.store.Applications().List(ctx, storage.ApplicationFilter{JobIDs: jobIDs})
	if err != nil {
		return nil, MapRepoError(err, "listing applications for employer")
	}
	return s.enrich(ctx, apps, true, true)
}

// ListForJob returns the job's applications. Callers gate it with JobService.CheckOwnership.
func (s *applicationService) ListForJob(ctx context.Context, jobID uuid.UUID) ([]models.ApplicationDetail, error) {
	apps, err := s.store.Applications().List(ctx, storage.ApplicationFilter{JobIDs: []uuid.UUID{jobID}})
	if err != nil {
		return nil, MapRepoError(err, "listing applications for job")
	}
	return s.enrich(ctx, apps, false, true)
}

// enrich batch-loads the requested projections for a list of applications.
func (s *applicationService) enrich(ctx context.Context, apps []models.Application, withJob, withApplicant bool) ([]models.ApplicationDetail, error) {
	var jobs map[uuid.UUID]*models.Job
	if withJob && len(apps) > 0 {
		list, err := s.store.Jobs().GetByIDs(ctx, uniqueIDs(apps, func(a models.Application) uuid.UUID { return a.JobID }))
		if err != nil {
			return nil, MapRepoError(err, "loading jobs for applications")
		}
		jobs = indexJobs(list)
	}

	var users map[uuid.UUID]*models.User
	if withApplicant && len(apps) > 0 {
		list, err := s.store.Users().GetByIDs(ctx, uniqueIDs(apps, func(a models.Application) uuid.UUID { return a.UserID }))
		if err != nil {
			return nil, MapRepoError(err, "loading applicants")
		}
		users = indexUsers(list)
	}

	details := make([]models.ApplicationDetail, 0, len(apps))
	for _, app := range apps {
		d := models.ApplicationDetail{Application: app}
		if job, ok := jobs[app.JobID]; ok {
			d.Job = toJobRef(job)
		}
		if user, ok := users[app.UserID]; ok {
			d.Applicant = toUserRef(user)
		}
		details = append(details, d)
	}
	return details, nil
}
