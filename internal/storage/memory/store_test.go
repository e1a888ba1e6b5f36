package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, email string, role models.Role) *models.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &models.User{Name: email, Email: email, Role: role})
	require.NoError(t, err)
	return u
}

func seedJob(t *testing.T, s *Store, posterID uuid.UUID, title string) *models.Job {
	t.Helper()
	j, err := s.Jobs().Create(context.Background(), &models.Job{
		Title:       title,
		Company:     "Acme",
		Location:    "Remote",
		Type:        models.JobTypeFullTime,
		Category:    models.CategoryDevelopment,
		Description: "Build things",
		PostedBy:    posterID,
	})
	require.NoError(t, err)
	return j
}

func TestLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"Migrate", func() error { return s.Migrate(ctx) }},
		{"Ping", func() error { return s.Ping(ctx) }},
		{"Close", func() error { return s.Close(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.fn())
		})
	}
}

func TestUsers_UniqueEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	seedUser(t, s, "a@x.test", models.RoleJobSeeker)
	_, err := s.Users().Create(ctx, &models.User{Email: "a@x.test", Role: models.RoleEmployer})
	assert.True(t, errors.Is(err, storage.ErrConflict))

	got, err := s.Users().GetByEmail(ctx, "a@x.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleJobSeeker, got.Role)

	_, err = s.Users().GetByEmail(ctx, "missing@x.test")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestApplications_UniqueJobUserPair(t *testing.T) {
	s := New()
	ctx := context.Background()
	employer := seedUser(t, s, "e@x.test", models.RoleEmployer)
	seeker := seedUser(t, s, "s@x.test", models.RoleJobSeeker)
	job := seedJob(t, s, employer.ID, "Go developer")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Applications().Create(ctx, &models.Application{
				JobID: job.ID, UserID: seeker.ID, CoverLetter: "CL", Resume: "https://x.test/r.pdf",
				Status: models.ApplicationStatusPending,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, storage.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	apps, err := s.Applications().List(ctx, storage.ApplicationFilter{JobIDs: []uuid.UUID{job.ID}})
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplications_CreateForMissingJob(t *testing.T) {
	s := New()
	_, err := s.Applications().Create(context.Background(), &models.Application{JobID: uuid.New(), UserID: uuid.New()})
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestApplications_CountByStatus(t *testing.T) {
	s := New()
	ctx := context.Background()
	employer := seedUser(t, s, "e@x.test", models.RoleEmployer)
	jobA := seedJob(t, s, employer.ID, "A")
	jobB := seedJob(t, s, employer.ID, "B")

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		seeker := seedUser(t, s, uuid.NewString()+"@x.test", models.RoleJobSeeker)
		for _, job := range []*models.Job{jobA, jobB} {
			app, err := s.Applications().Create(ctx, &models.Application{JobID: job.ID, UserID: seeker.ID, Status: models.ApplicationStatusPending})
			require.NoError(t, err)
			ids = append(ids, app.ID)
		}
	}
	_, err := s.Applications().UpdateStatus(ctx, ids[0], models.ApplicationStatusRejected)
	require.NoError(t, err)

	counts, err := s.Applications().CountByStatus(ctx, storage.ApplicationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []models.StatusCount{
		{Status: models.ApplicationStatusPending, Count: 5},
		{Status: models.ApplicationStatusRejected, Count: 1},
	}, counts)

	counts, err = s.Applications().CountByStatus(ctx, storage.ApplicationFilter{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, counts)

	n, err := s.Applications().DeleteByJob(ctx, jobA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestJobs_ListFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	employer := seedUser(t, s, "e@x.test", models.RoleEmployer)
	other := seedUser(t, s, "o@x.test", models.RoleEmployer)

	first := seedJob(t, s, employer.ID, "Senior Go Engineer")
	second := seedJob(t, s, other.ID, "Product Designer")
	designCategory := models.CategoryDesign
	_, err := s.Jobs().Update(ctx, second.ID, &dto.UpdateJobRequest{Category: &designCategory})
	require.NoError(t, err)

	all, err := s.Jobs().List(ctx, &dto.ListJobsRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	byText, err := s.Jobs().List(ctx, &dto.ListJobsRequest{Search: "go eng"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, first.ID, byText[0].ID)

	byCategory, err := s.Jobs().List(ctx, &dto.ListJobsRequest{Category: models.CategoryDesign})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, second.ID, byCategory[0].ID)

	byPoster, err := s.Jobs().List(ctx, &dto.ListJobsRequest{PostedBy: employer.ID})
	require.NoError(t, err)
	require.Len(t, byPoster, 1)

	ids, err := s.Jobs().ListIDsByPoster(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID}, ids)
}

func TestJobs_ReturnedValuesAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	employer := seedUser(t, s, "e@x.test", models.RoleEmployer)
	job := seedJob(t, s, employer.ID, "Original")

	reqs := []string{"Go"}
	_, err := s.Jobs().Update(ctx, job.ID, &dto.UpdateJobRequest{Requirements: &reqs})
	require.NoError(t, err)
	reqs[0] = "mutated"

	got, err := s.Jobs().GetByID(ctx, job.ID)
	require.NoError(t, err)
	got.Title = "changed"

	again, err := s.Jobs().GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Title)
	assert.Equal(t, []string{"Go"}, again.Requirements)
}

func TestDeleteJob_RemovesApplications(t *testing.T) {
	s := New()
	ctx := context.Background()
	employer := seedUser(t, s, "boss@example.com", models.RoleEmployer)
	seeker := seedUser(t, s, "seeker@example.com", models.RoleJobSeeker)
	job := seedJob(t, s, employer.ID, "Backend")
	kept := seedJob(t, s, employer.ID, "Frontend")

	for _, j := range []*models.Job{job, kept} {
		_, err := s.Applications().Create(ctx, &models.Application{JobID: j.ID, UserID: seeker.ID, Status: models.ApplicationStatusPending})
		require.NoError(t, err)
	}

	removed, err := s.DeleteJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = s.Jobs().GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	left, err := s.Applications().List(ctx, storage.ApplicationFilter{UserID: seeker.ID})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, kept.ID, left[0].JobID)

	// A submission racing the delete finds the job gone.
	_, err = s.Applications().Create(ctx, &models.Application{JobID: job.ID, UserID: seeker.ID, Status: models.ApplicationStatusPending})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.DeleteJob(ctx, job.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
