package services_test

import (
	"context"
	"testing"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/storage/memory"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validResume = "https://x.test/r.pdf"

// fixture holds a memory store seeded with one employer, one job and two job seekers.
type fixture struct {
	store    *memory.Store
	employer models.Actor
	seeker   models.Actor
	other    models.Actor
	job      *models.Job
}

func createUser(t *testing.T, store storage.Store, name string, role models.Role, company string) models.Actor {
	t.Helper()
	user, err := store.Users().Create(context.Background(), &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		Company:      company,
	})
	require.NoError(t, err, "creating user %s", name)
	return user.Actor()
}

func createJob(t *testing.T, store storage.Store, poster models.Actor, title string) *models.Job {
	t.Helper()
	job, err := store.Jobs().Create(context.Background(), &models.Job{
		Title:        title,
		Company:      poster.Company,
		Location:     "Remote",
		Type:         models.JobTypeFullTime,
		Salary:       "100k",
		Description:  "Build things",
		Requirements: []string{"Go"},
		Category:     models.CategoryDevelopment,
		PostedBy:     poster.ID,
	})
	require.NoError(t, err, "creating job %s", title)
	return job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	f := &fixture{store: store}
	f.employer = createUser(t, store, "employer", models.RoleEmployer, "Acme")
	f.seeker = createUser(t, store, "seeker", models.RoleJobSeeker, "")
	f.other = createUser(t, store, "other", models.RoleJobSeeker, "")
	f.job = createJob(t, store, f.employer, "Backend Engineer")
	return f
}

func applyRequest(job *models.Job) *dto.CreateApplicationRequest {
	return &dto.CreateApplicationRequest{JobID: job.ID.String(), CoverLetter: "CL", Resume: validResume}
}

// mockStore records which repositories a service reaches for.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Users() storage.UserRepository {
	args := m.Called()
	return args.Get(0).(storage.UserRepository)
}

func (m *mockStore) Jobs() storage.JobRepository {
	args := m.Called()
	return args.Get(0).(storage.JobRepository)
}

func (m *mockStore) Applications() storage.ApplicationRepository {
	args := m.Called()
	return args.Get(0).(storage.ApplicationRepository)
}

func (m *mockStore) DeleteJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *mockStore) Ping(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *mockStore) Close(ctx context.Context) error   { return m.Called(ctx).Error(0) }
