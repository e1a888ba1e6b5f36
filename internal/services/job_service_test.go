package services_test

import (
	"context"
	"errors"
	"testing"

	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/storage"
	"job-board-api/internal/storage/memory"
	"job-board-api/internal/transport/dto"
	"job-board-api/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a pointer to a string
func ptrStr(s string) *string { return &s }

func validJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:        "Platform Engineer",
		Company:      "Ignored Corp",
		Location:     "Berlin",
		Type:         models.JobTypeContract,
		Salary:       "90k",
		Description:  "Run the platform",
		Requirements: []string{"Go", "Kubernetes"},
		Category:     models.CategoryDevelopment,
	}
}

func TestJobService_Create(t *testing.T) {
	f := newFixture(t)
	svc := services.NewJobService(f.store, validation.New())

	job, err := svc.Create(context.Background(), f.employer, validJobRequest())

	require.NoError(t, err)
	assert.Equal(t, "Acme", job.Company, "company comes from the employer profile")
	assert.Equal(t, f.employer.ID, job.PostedBy)
	require.NotNil(t, job.Poster)
	assert.Equal(t, "employer", job.Poster.Name)
	assert.Equal(t, []string{"Go", "Kubernetes"}, job.Requirements)
}

func TestJobService_Create_Validation(t *testing.T) {
	f := newFixture(t)
	svc := services.NewJobService(f.store, validation.New())

	tests := []struct {
		name   string
		mutate func(*dto.CreateJobRequest)
	}{
		{name: "missing title", mutate: func(r *dto.CreateJobRequest) { r.Title = "" }},
		{name: "unknown type", mutate: func(r *dto.CreateJobRequest) { r.Type = "Seasonal" }},
		{name: "unknown category", mutate: func(r *dto.CreateJobRequest) { r.Category = "Engineering" }},
		{name: "empty requirement", mutate: func(r *dto.CreateJobRequest) { r.Requirements = []string{"Go", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validJobRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), f.employer, req)
			assert.ErrorIs(t, err, services.ErrValidation)
		})
	}
}

func TestJobService_Create_CompanyFallback(t *testing.T) {
	f := newFixture(t)
	svc := services.NewJobService(f.store, validation.New())
	noCompany := createUser(t, f.store, "solo", models.RoleEmployer, "")

	req := validJobRequest()
	job, err := svc.Create(context.Background(), noCompany, req)
	require.NoError(t, err)
	assert.Equal(t, "Ignored Corp", job.Company)

	req.Company = ""
	_, err = svc.Create(context.Background(), noCompany, req)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestJobService_ListAndFilters(t *testing.T) {
	f := newFixture(t)
	svc := services.NewJobService(f.store, validation.New())
	ctx := context.Background()

	_, err := svc.Create(ctx, f.employer, validJobRequest())
	require.NoError(t, err)

	all, err := svc.List(ctx, &dto.ListJobsRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Platform Engineer", all[0].Title, "newest first")
	for _, j := range all {
		require.NotNil(t, j.Poster)
	}

	found, err := svc.List(ctx, &dto.ListJobsRequest{Search: "PLATFORM"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = svc.List(ctx, &dto.ListJobsRequest{Category: "Nope"})
	assert.ErrorIs(t, err, services.ErrValidation)

	globex := createUser(t, f.store, "globex", models.RoleEmployer, "Globex")
	createJob(t, f.store, globex, "Designer")

	mine, err := svc.ListMine(ctx, f.employer)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestJobService_UpdateAndOwnership(t *testing.T) {
	f := newFixture(t)
	svc := services.NewJobService(f.store, validation.New())
	ctx := context.Background()
	globex := createUser(t, f.store, "globex", models.RoleEmployer, "Globex")

	updated, err := svc.Update(ctx, f.employer, f.job.ID, &dto.UpdateJobRequest{Title: ptrStr("Staff Engineer")})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, "Remote", updated.Location, "fields left nil are unchanged")

	_, err = svc.Update(ctx, globex, f.job.ID, &dto.UpdateJobRequest{Title: ptrStr("Hijacked")})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.Update(ctx, f.employer, uuid.New(), &dto.UpdateJobRequest{Title: ptrStr("Ghost")})
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.NoError(t, svc.CheckOwnership(ctx, f.employer, f.job.ID))
	assert.ErrorIs(t, svc.CheckOwnership(ctx, globex, f.job.ID), services.ErrForbidden)
	assert.ErrorIs(t, svc.CheckOwnership(ctx, f.employer, uuid.New()), services.ErrNotFound)
}

func TestJobService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	jobs := services.NewJobService(f.store, validation.New())
	apps := services.NewApplicationService(f.store, validation.New(), nil)
	ctx := context.Background()

	_, err := apps.Apply(ctx, f.seeker, applyRequest(f.job))
	require.NoError(t, err)

	assert.ErrorIs(t, jobs.Delete(ctx, f.seeker, f.job.ID), services.ErrForbidden)
	require.NoError(t, jobs.Delete(ctx, f.employer, f.job.ID))

	_, err = jobs.GetByID(ctx, f.job.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	remaining, err := f.store.Applications().List(ctx, storage.ApplicationFilter{JobIDs: []uuid.UUID{f.job.ID}})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

// deleteFailingStore fails the combined job delete the way a lost database connection would.
type deleteFailingStore struct {
	*memory.Store
}

func (s deleteFailingStore) DeleteJob(context.Context, uuid.UUID) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestJobService_DeleteFailureKeepsJobAndApplications(t *testing.T) {
	f := newFixture(t)
	apps := services.NewApplicationService(f.store, validation.New(), nil)
	ctx := context.Background()
	_, err := apps.Apply(ctx, f.seeker, applyRequest(f.job))
	require.NoError(t, err)

	jobs := services.NewJobService(deleteFailingStore{f.store}, validation.New())
	assert.ErrorIs(t, jobs.Delete(ctx, f.employer, f.job.ID), services.ErrInternal)

	_, err = f.store.Jobs().GetByID(ctx, f.job.ID)
	assert.NoError(t, err, "job must survive a failed delete")
	mine, err := apps.ListForJobSeeker(ctx, f.seeker)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Job, "application must still resolve its job")
}
