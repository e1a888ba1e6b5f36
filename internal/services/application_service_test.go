package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/ratelimit"
	"job-board-api/internal/services"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"
	"job-board-api/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationService(f *fixture) services.ApplicationService {
	return services.NewApplicationService(f.store, validation.New(), nil)
}

func TestApplicationService_Apply_Success(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)

	app, err := svc.Apply(context.Background(), f.seeker, applyRequest(f.job))

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Equal(t, f.job.ID, app.JobID)
	assert.Equal(t, f.seeker.ID, app.UserID)
	require.NotNil(t, app.Job)
	assert.Equal(t, "Backend Engineer", app.Job.Title)
	assert.Equal(t, "Acme", app.Job.Company)
	require.NotNil(t, app.Applicant)
	assert.Equal(t, "seeker", app.Applicant.Name)
	assert.Equal(t, "seeker@example.com", app.Applicant.Email)
}

func TestApplicationService_Apply_ErrorOrder(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)
	ctx := context.Background()

	_, err := svc.Apply(ctx, f.other, applyRequest(f.job))
	require.NoError(t, err)
	// A stray record for the poster, written directly to storage.
	_, err = f.store.Applications().Create(ctx, &models.Application{
		JobID: f.job.ID, UserID: f.employer.ID, CoverLetter: "CL", Resume: validResume, Status: models.ApplicationStatusPending,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   models.Actor
		req     *dto.CreateApplicationRequest
		wantErr error
	}{
		{
			name:    "missing cover letter",
			actor:   f.seeker,
			req:     &dto.CreateApplicationRequest{JobID: f.job.ID.String(), Resume: validResume},
			wantErr: services.ErrValidation,
		},
		{
			name:    "resume is not a URL",
			actor:   f.seeker,
			req:     &dto.CreateApplicationRequest{JobID: f.job.ID.String(), CoverLetter: "CL", Resume: "my resume"},
			wantErr: services.ErrValidation,
		},
		{
			name:    "structural errors win over a malformed job id",
			actor:   f.seeker,
			req:     &dto.CreateApplicationRequest{JobID: "not-an-id", CoverLetter: "CL"},
			wantErr: services.ErrValidation,
		},
		{
			name:    "malformed job id",
			actor:   f.seeker,
			req:     &dto.CreateApplicationRequest{JobID: "not-an-id", CoverLetter: "CL", Resume: validResume},
			wantErr: services.ErrValidation,
		},
		{
			name:    "unknown job",
			actor:   f.seeker,
			req:     &dto.CreateApplicationRequest{JobID: uuid.NewString(), CoverLetter: "CL", Resume: validResume},
			wantErr: services.ErrNotFound,
		},
		{
			name:    "poster applies to own job",
			actor:   f.employer,
			req:     applyRequest(f.job),
			wantErr: services.ErrForbidden,
		},
		{
			name:    "self-application is reported before a duplicate",
			actor:   models.Actor{ID: f.employer.ID, Role: models.RoleJobSeeker},
			req:     applyRequest(f.job),
			wantErr: services.ErrForbidden,
		},
		{
			name:    "duplicate application",
			actor:   f.other,
			req:     applyRequest(f.job),
			wantErr: services.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply(ctx, tt.actor, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplicationService_Apply_ValidationDetails(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)

	_, err := svc.Apply(context.Background(), f.seeker, &dto.CreateApplicationRequest{JobID: f.job.ID.String(), CoverLetter: "CL", Resume: "nope"})

	var vErr *services.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "resume")
}

func TestApplicationService_Apply_DuplicateNeverCreatesSecondRecord(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Apply(ctx, f.seeker, applyRequest(f.job))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, services.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	apps, err := f.store.Applications().List(ctx, storage.ApplicationFilter{UserID: f.seeker.ID})
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplicationService_GetByID_Access(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)
	ctx := context.Background()

	app, err := svc.Apply(ctx, f.seeker, applyRequest(f.job))
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, f.seeker, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)
	require.NotNil(t, got.Job)
	require.NotNil(t, got.Applicant)

	_, err = svc.GetByID(ctx, f.employer, app.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, f.other, app.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.GetByID(ctx, f.seeker, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestApplicationService_GetByID_JobRemoved(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)
	ctx := context.Background()

	app, err := svc.Apply(ctx, f.seeker, applyRequest(f.job))
	require.NoError(t, err)
	require.NoError(t, f.store.Jobs().Delete(ctx, f.job.ID))

	got, err := svc.GetByID(ctx, f.seeker, app.ID)
	require.NoError(t, err, "the applicant keeps access without the job")
	assert.Nil(t, got.Job)

	_, err = svc.GetByID(ctx, f.employer, app.ID)
	assert.ErrorIs(t, err, services.ErrForbidden, "the poster relationship cannot be derived without the job")
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)
	ctx := context.Background()

	app, err := svc.Apply(ctx, f.seeker, applyRequest(f.job))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, f.employer, app.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)

	_, err = svc.UpdateStatus(ctx, f.other, app.ID, "rejected")
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, f.seeker, app.ID, "rejected")
	assert.ErrorIs(t, err, services.ErrForbidden, "the applicant cannot change the status")

	stored, err := f.store.Applications().GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status, "a refused update leaves the status unchanged")

	_, err = svc.UpdateStatus(ctx, f.employer, uuid.New(), "reviewed")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Any status may follow any other.
	for _, status := range []string{"pending", "rejected", "reviewed", "accepted"} {
		updated, err := svc.UpdateStatus(ctx, f.employer, app.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, string(updated.Status))
	}
}

func TestApplicationService_UpdateStatus_InvalidStatusSkipsStorage(t *testing.T) {
	store := new(mockStore)
	svc := services.NewApplicationService(store, validation.New(), nil)

	for _, status := range []string{"", "hired", "Accepted"} {
		_, err := svc.UpdateStatus(context.Background(), models.Actor{ID: uuid.New()}, uuid.New(), status)
		assert.ErrorIs(t, err, services.ErrValidation, "status %q", status)
	}

	store.AssertNotCalled(t, "Applications")
	store.AssertNotCalled(t, "Jobs")

	_, err := svc.UpdateStatus(context.Background(), models.Actor{ID: uuid.New()}, uuid.New(), "hired")
	var vErr *services.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Field 'status' must be one of: pending, reviewed, accepted, rejected", vErr.Fields["status"])
}

func TestApplicationService_Delete(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)
	ctx := context.Background()

	app, err := svc.Apply(ctx, f.seeker, applyRequest(f.job))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AuthorizeDelete(ctx, f.other, app.ID), services.ErrForbidden)
	assert.NoError(t, svc.AuthorizeDelete(ctx, f.employer, app.ID))
	require.NoError(t, svc.AuthorizeDelete(ctx, f.seeker, app.ID))

	require.NoError(t, svc.Delete(ctx, app.ID))
	assert.NoError(t, svc.Delete(ctx, app.ID), "deleting an absent application succeeds")

	_, err = svc.GetByID(ctx, f.seeker, app.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, svc.AuthorizeDelete(ctx, f.seeker, app.ID), services.ErrNotFound)
}

func TestApplicationService_Lists(t *testing.T) {
	f := newFixture(t)
	svc := newApplicationService(f)
	ctx := context.Background()

	secondJob := createJob(t, f.store, f.employer, "Frontend Engineer")
	otherEmployer := createUser(t, f.store, "globex", models.RoleEmployer, "Globex")
	foreignJob := createJob(t, f.store, otherEmployer, "Designer")

	for _, job := range []*models.Job{f.job, secondJob, foreignJob} {
		_, err := svc.Apply(ctx, f.seeker, applyRequest(job))
		require.NoError(t, err)
	}
	_, err := svc.Apply(ctx, f.other, applyRequest(f.job))
	require.NoError(t, err)

	mine, err := svc.ListForJobSeeker(ctx, f.seeker)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, d := range mine {
		require.NotNil(t, d.Job)
		assert.Nil(t, d.Applicant)
	}

	received, err := svc.ListForEmployer(ctx, f.employer)
	require.NoError(t, err)
	assert.Len(t, received, 3)
	for _, d := range received {
		assert.NotEqual(t, foreignJob.ID, d.JobID)
		require.NotNil(t, d.Applicant)
		require.NotNil(t, d.Job)
	}

	forJob, err := svc.ListForJob(ctx, f.job.ID)
	require.NoError(t, err)
	assert.Len(t, forJob, 2)
	for _, d := range forJob {
		require.NotNil(t, d.Applicant)
	}

	nobody := createUser(t, f.store, "initech", models.RoleEmployer, "Initech")
	none, err := svc.ListForEmployer(ctx, nobody)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

// Rejected submissions never count against the limit, and a duplicate keeps reporting a conflict.
func TestApplicationService_Apply_RateLimit(t *testing.T) {
	f := newFixture(t)
	second := createJob(t, f.store, f.employer, "Frontend Engineer")
	third := createJob(t, f.store, f.employer, "Data Engineer")
	svc := services.NewApplicationService(f.store, validation.New(), ratelimit.NewLocalLimiter(2, time.Hour))
	ctx := context.Background()

	bad := applyRequest(f.job)
	bad.Resume = "not a url"
	for i := 0; i < 3; i++ {
		_, err := svc.Apply(ctx, f.seeker, bad)
		require.ErrorIs(t, err, services.ErrValidation)
	}

	_, err := svc.Apply(ctx, f.seeker, applyRequest(f.job))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.Apply(ctx, f.seeker, applyRequest(f.job))
		assert.ErrorIs(t, err, services.ErrConflict)
	}

	_, err = svc.Apply(ctx, f.seeker, applyRequest(second))
	require.NoError(t, err)

	_, err = svc.Apply(ctx, f.seeker, applyRequest(third))
	assert.ErrorIs(t, err, services.ErrRateLimited)

	_, err = svc.Apply(ctx, f.other, applyRequest(third))
	assert.NoError(t, err, "the limit is per applicant")

	apps, err := svc.ListForJobSeeker(ctx, f.seeker)
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}
