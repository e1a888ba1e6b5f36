package services

import (
	"context"
	"fmt"
	"strings"

	"job-board-api/internal/metrics"
	"job-board-api/internal/models"
	"job-board-api/internal/policy"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type jobService struct {
	store     storage.Store
	validator *validator.Validate
}

// NewJobService creates a new instance of JobService.
func NewJobService(store storage.Store, validate *validator.Validate) JobService {
	return &jobService{store: store, validator: validate}
}

// Create posts a job for the employer. The employer's company overrides the one in the request.
func (s *jobService) Create(ctx context.Context, actor models.Actor, req *dto.CreateJobRequest) (*models.JobDetail, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	company := strings.TrimSpace(actor.Company)
	if company == "" {
		company = strings.TrimSpace(req.Company)
	}
	if company == "" {
		return nil, newValidationError("company is required", map[string]string{"company": "Field 'company' is required"})
	}

	job, err := s.store.Jobs().Create(ctx, &models.Job{
		Title:        req.Title,
		Company:      company,
		Location:     req.Location,
		Type:         req.Type,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Category:     req.Category,
		PostedBy:     actor.ID,
	})
	if err != nil {
		log.Printf("JobService: Error creating job: %v", err)
		return nil, MapRepoError(err, "creating job")
	}
	return s.withPoster(ctx, job)
}

func (s *jobService) GetByID(ctx context.Context, id uuid.UUID) (*models.JobDetail, error) {
	job, err := s.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "getting job by ID")
	}
	return s.withPoster(ctx, job)
}

func (s *jobService) List(ctx context.Context, req *dto.ListJobsRequest) ([]models.JobDetail, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	jobs, err := s.store.Jobs().List(ctx, req)
	if err != nil {
		return nil, MapRepoError(err, "listing jobs")
	}
	return s.withPosters(ctx, jobs)
}

func (s *jobService) ListMine(ctx context.Context, actor models.Actor) ([]models.JobDetail, error) {
	jobs, err := s.store.Jobs().List(ctx, &dto.ListJobsRequest{PostedBy: actor.ID})
	if err != nil {
		return nil, MapRepoError(err, "listing employer jobs")
	}
	return s.withPosters(ctx, jobs)
}

func (s *jobService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *dto.UpdateJobRequest) (*models.JobDetail, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, actor, id, "updating job"); err != nil {
		return nil, err
	}

	updated, err := s.store.Jobs().Update(ctx, id, req)
	if err != nil {
		return nil, MapRepoError(err, "updating job")
	}
	return s.withPoster(ctx, updated)
}

// Delete removes the job together with its applications.
func (s *jobService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id, "deleting job"); err != nil {
		return err
	}
	removed, err := s.store.DeleteJob(ctx, id)
	if err != nil {
		return MapRepoError(err, "deleting job")
	}
	log.Printf("JobService: Job %s deleted with %d applications", id, removed)
	return nil
}

func (s *jobService) CheckOwnership(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	_, err := s.owned(ctx, actor, id, "checking job ownership")
	return err
}

// owned loads the job and requires actor to be its poster.
func (s *jobService) owned(ctx context.Context, actor models.Actor, id uuid.UUID, op string) (*models.Job, error) {
	job, err := s.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, op)
	}
	if !policy.CanManageJob(actor, job) {
		metrics.RecordPolicyDenial("can_manage_job")
		return nil, fmt.Errorf("%w: not authorized to manage this job", ErrForbidden)
	}
	return job, nil
}

func (s *jobService) withPoster(ctx context.Context, job *models.Job) (*models.JobDetail, error) {
	details, err := s.withPosters(ctx, []models.Job{*job})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *jobService) withPosters(ctx context.Context, jobs []models.Job) ([]models.JobDetail, error) {
	details := make([]models.JobDetail, 0, len(jobs))
	if len(jobs) == 0 {
		return details, nil
	}

	posters, err := s.store.Users().GetByIDs(ctx, uniqueIDs(jobs, func(j models.Job) uuid.UUID { return j.PostedBy }))
	if err != nil {
		return nil, MapRepoError(err, "loading job posters")
	}
	byID := indexUsers(posters)

	for _, job := range jobs {
		d := models.JobDetail{Job: job}
		if poster, ok := byID[job.PostedBy]; ok {
			d.Poster = toUserRef(poster)
		}
		details = append(details, d)
	}
	return details, nil
}
