package services

import (
	"context"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
)

type statsService struct {
	store storage.Store
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(store storage.Store) StatsService {
	return &statsService{store: store}
}

// ForJobSeeker counts the actor's applications by status. Statuses without applications are omitted.
func (s *statsService) ForJobSeeker(ctx context.Context, actor models.Actor) ([]models.StatusCount, error) {
	counts, err := s.store.Applications().CountByStatus(ctx, storage.ApplicationFilter{UserID: actor.ID})
	if err != nil {
		return nil, MapRepoError(err, "counting job seeker applications")
	}
	return nonNil(counts), nil
}

// ForEmployer counts the applications received on the actor's jobs by status.
func (s *statsService) ForEmployer(ctx context.Context, actor models.Actor) ([]models.StatusCount, error) {
	jobIDs, err := s.store.Jobs().ListIDsByPoster(ctx, actor.ID)
	if err != nil {
		return nil, MapRepoError(err, "listing employer jobs")
	}
	// An empty JobIDs filter would match every application.
	if len(jobIDs) == 0 {
		return []models.StatusCount{}, nil
	}

	counts, err := s.store.Applications().CountByStatus(ctx, storage.ApplicationFilter{JobIDs: jobIDs})
	if err != nil {
		return nil, MapRepoError(err, "counting employer applications")
	}
	return nonNil(counts), nil
}

func nonNil(counts []models.StatusCount) []models.StatusCount {
	if counts == nil {
		return []models.StatusCount{}
	}
	return counts
}
