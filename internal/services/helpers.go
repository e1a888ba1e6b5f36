package services

import (
	"errors"
	"fmt"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MapRepoError maps storage errors to service errors
func MapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s", ErrConflict, operation)
	}
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("%w during %s: %v", ErrInternal, operation, err)
}

// validateStruct runs the validator and converts its failures into a ValidationError.
func validateStruct(v *validator.Validate, req any) error {
	if err := v.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return newValidationError("invalid request", validation.Details(err))
	}
	return nil
}

func toUserRef(u *models.User) *models.UserRef {
	return &models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Company: u.Company}
}

func toJobRef(j *models.Job) *models.JobRef {
	return &models.JobRef{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location}
}

// uniqueIDs returns the distinct ids produced by key, in first-seen order.
func uniqueIDs[T any](items []T, key func(T) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id := key(item)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func indexUsers(users []models.User) map[uuid.UUID]*models.User {
	m := make(map[uuid.UUID]*models.User, len(users))
	for i := range users {
		m[users[i].ID] = &users[i]
	}
	return m
}

func indexJobs(jobs []models.Job) map[uuid.UUID]*models.Job {
	m := make(map[uuid.UUID]*models.Job, len(jobs))
	for i := range jobs {
		m[jobs[i].ID] = &jobs[i]
	}
	return m
}
