// Package memory is an in-process Store used by tests and the "memory" storage driver.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

type userRecord struct {
	user models.User
	seq  int64
}

type jobRecord struct {
	job models.Job
	seq int64
}

type applicationRecord struct {
	app models.Application
	seq int64
}

// Store keeps every entity in maps guarded by one RWMutex and enforces the same
// uniqueness rules as the database backends.
type Store struct {
	mu           sync.RWMutex
	seq          int64
	users        map[uuid.UUID]*userRecord
	jobs         map[uuid.UUID]*jobRecord
	applications map[uuid.UUID]*applicationRecord

	now func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*userRecord),
		jobs:         make(map[uuid.UUID]*jobRecord),
		applications: make(map[uuid.UUID]*applicationRecord),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) Users() storage.UserRepository               { return &userRepo{s} }
func (s *Store) Jobs() storage.JobRepository                 { return &jobRepo{s} }
func (s *Store) Applications() storage.ApplicationRepository { return &applicationRepo{s} }

// DeleteJob removes the job and its applications under one lock.
func (s *Store) DeleteJob(_ context.Context, jobID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[jobID]; !ok {
		return 0, storage.ErrNotFound
	}
	delete(s.jobs, jobID)

	var n int64
	for id, rec := range s.applications {
		if rec.app.JobID == jobID {
			delete(s.applications, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) Migrate(context.Context) error { return nil }
func (s *Store) Ping(context.Context) error    { return nil }
func (s *Store) Close(context.Context) error   { return nil }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// ──────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.users {
		if rec.user.Email == user.Email {
			return nil, storage.ErrConflict
		}
	}

	u := *user
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if _, exists := r.s.users[u.ID]; exists {
		return nil, storage.ErrConflict
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now

	r.s.users[u.ID] = &userRecord{user: u, seq: r.s.nextSeq()}
	out := u
	return &out, nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	u := rec.user
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.users {
		if rec.user.Email == email {
			u := rec.user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *userRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if rec, ok := r.s.users[id]; ok {
			out = append(out, rec.user)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────
// Jobs
// ──────────────────────────────────────────────────

type jobRepo struct{ s *Store }

func copyJob(j models.Job) models.Job {
	if j.Requirements != nil {
		j.Requirements = append([]string(nil), j.Requirements...)
	}
	return j
}

func (r *jobRepo) Create(_ context.Context, job *models.Job) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[job.PostedBy]; !ok {
		return nil, storage.ErrNotFound
	}

	j := copyJob(*job)
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	now := r.s.now()
	j.CreatedAt, j.UpdatedAt = now, now

	r.s.jobs[j.ID] = &jobRecord{job: j, seq: r.s.nextSeq()}
	out := copyJob(j)
	return &out, nil
}

func (r *jobRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	j := copyJob(rec.job)
	return &j, nil
}

func (r *jobRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Job, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if rec, ok := r.s.jobs[id]; ok {
			out = append(out, copyJob(rec.job))
		}
	}
	return out, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesJob(j *models.Job, f *dto.ListJobsRequest) bool {
	if f == nil {
		return true
	}
	if f.Search != "" && !containsFold(j.Title, f.Search) && !containsFold(j.Company, f.Search) && !containsFold(j.Description, f.Search) {
		return false
	}
	if f.Category != "" && j.Category != f.Category {
		return false
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	if f.Location != "" && !containsFold(j.Location, f.Location) {
		return false
	}
	if f.PostedBy != uuid.Nil && j.PostedBy != f.PostedBy {
		return false
	}
	return true
}

func (r *jobRepo) List(_ context.Context, filter *dto.ListJobsRequest) ([]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	recs := make([]*jobRecord, 0, len(r.s.jobs))
	for _, rec := range r.s.jobs {
		if matchesJob(&rec.job, filter) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, k int) bool {
		if !recs[i].job.CreatedAt.Equal(recs[k].job.CreatedAt) {
			return recs[i].job.CreatedAt.After(recs[k].job.CreatedAt)
		}
		return recs[i].seq > recs[k].seq
	})

	out := make([]models.Job, 0, len(recs))
	for _, rec := range recs {
		out = append(out, copyJob(rec.job))
	}
	return out, nil
}

func (r *jobRepo) ListIDsByPoster(_ context.Context, posterID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []uuid.UUID
	for id, rec := range r.s.jobs {
		if rec.job.PostedBy == posterID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *jobRepo) Update(_ context.Context, id uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	j := &rec.job
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.Type != nil {
		j.Type = *req.Type
	}
	if req.Salary != nil {
		j.Salary = *req.Salary
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		j.Requirements = append([]string(nil), (*req.Requirements)...)
	}
	if req.Category != nil {
		j.Category = *req.Category
	}
	j.UpdatedAt = r.s.now()

	out := copyJob(*j)
	return &out, nil
}

func (r *jobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.jobs, id)
	return nil
}

// ──────────────────────────────────────────────────
// Applications
// ──────────────────────────────────────────────────

type applicationRepo struct{ s *Store }

func matchesApplication(a *models.Application, f storage.ApplicationFilter) bool {
	if f.UserID != uuid.Nil && a.UserID != f.UserID {
		return false
	}
	if len(f.JobIDs) > 0 {
		for _, id := range f.JobIDs {
			if a.JobID == id {
				return true
			}
		}
		return false
	}
	return true
}

func (r *applicationRepo) Create(_ context.Context, app *models.Application) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.applications {
		if rec.app.JobID == app.JobID && rec.app.UserID == app.UserID {
			return nil, storage.ErrConflict
		}
	}
	if _, ok := r.s.jobs[app.JobID]; !ok {
		return nil, storage.ErrNotFound
	}

	a := *app
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now

	r.s.applications[a.ID] = &applicationRecord{app: a, seq: r.s.nextSeq()}
	out := a
	return &out, nil
}

func (r *applicationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	a := rec.app
	return &a, nil
}

func (r *applicationRepo) GetByJobAndUser(_ context.Context, jobID, userID uuid.UUID) (*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.applications {
		if rec.app.JobID == jobID && rec.app.UserID == userID {
			a := rec.app
			return &a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *applicationRepo) List(_ context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	recs := make([]*applicationRecord, 0)
	for _, rec := range r.s.applications {
		if matchesApplication(&rec.app, filter) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, k int) bool {
		if !recs[i].app.CreatedAt.Equal(recs[k].app.CreatedAt) {
			return recs[i].app.CreatedAt.After(recs[k].app.CreatedAt)
		}
		return recs[i].seq > recs[k].seq
	})

	out := make([]models.Application, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.app)
	}
	return out, nil
}

func (r *applicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	rec.app.Status = status
	rec.app.UpdatedAt = r.s.now()
	a := rec.app
	return &a, nil
}

func (r *applicationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.applications[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.applications, id)
	return nil
}

func (r *applicationRepo) DeleteByJob(_ context.Context, jobID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, rec := range r.s.applications {
		if rec.app.JobID == jobID {
			delete(r.s.applications, id)
			n++
		}
	}
	return n, nil
}

func (r *applicationRepo) CountByStatus(_ context.Context, filter storage.ApplicationFilter) ([]models.StatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[models.ApplicationStatus]int64)
	for _, rec := range r.s.applications {
		if matchesApplication(&rec.app, filter) {
			counts[rec.app.Status]++
		}
	}

	out := make([]models.StatusCount, 0, len(counts))
	for _, status := range models.ApplicationStatuses {
		if n, ok := counts[status]; ok {
			out = append(out, models.StatusCount{Status: status, Count: n})
		}
	}
	return out, nil
}
