// Package policy holds the authorization rules for jobs and applications.
//
// Every function is a pure predicate over an actor and the entities involved. Callers resolve the
// entities first and translate a false result into a forbidden error.
package policy

import (
	"job-board-api/internal/models"
)

// HasRole reports whether the actor holds one of the given roles.
func HasRole(actor models.Actor, roles ...models.Role) bool {
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// CanApply is false when the actor posted the job.
func CanApply(actor models.Actor, job *models.Job) bool {
	return job.PostedBy != actor.ID
}

func IsApplicant(actor models.Actor, app *models.Application) bool {
	return app.UserID == actor.ID
}

// IsJobPoster reports whether the actor posted the application's job. A nil job has no poster.
func IsJobPoster(actor models.Actor, app *models.Application, job *models.Job) bool {
	if job == nil || job.ID != app.JobID {
		return false
	}
	return job.PostedBy == actor.ID
}

func CanViewApplication(actor models.Actor, app *models.Application, job *models.Job) bool {
	return IsApplicant(actor, app) || IsJobPoster(actor, app, job)
}

// CanMutateStatus allows only the poster of the job to move an application between statuses.
func CanMutateStatus(actor models.Actor, app *models.Application, job *models.Job) bool {
	return IsJobPoster(actor, app, job)
}

func CanDelete(actor models.Actor, app *models.Application, job *models.Job) bool {
	return IsApplicant(actor, app) || IsJobPoster(actor, app, job)
}

// CanManageJob allows the poster to edit or remove a job posting.
func CanManageJob(actor models.Actor, job *models.Job) bool {
	return job.PostedBy == actor.ID
}
