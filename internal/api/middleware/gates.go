package middleware

import (
	"context"

	"job-board-api/internal/api/apierror"
	"job-board-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JobOwnershipChecker is satisfied by services.JobService.
type JobOwnershipChecker interface {
	CheckOwnership(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

// ApplicationDeleteAuthorizer is satisfied by services.ApplicationService.
type ApplicationDeleteAuthorizer interface {
	AuthorizeDelete(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

// RequireJobOwner lets the request through only when the actor posted the job named by the path parameter.
func RequireJobOwner(jobs JobOwnershipChecker, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := MustActor(c)
		if !ok {
			return
		}
		jobID, ok := ParseUUIDParam(c, param, "Invalid job ID format")
		if !ok {
			return
		}
		if err := jobs.CheckOwnership(c.Request.Context(), actor, jobID); err != nil {
			apierror.Respond(c, err, "checking job ownership")
			return
		}
		c.Next()
	}
}

// RequireApplicationDeleteAccess lets the request through only when the actor may delete the application.
func RequireApplicationDeleteAccess(apps ApplicationDeleteAuthorizer, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := MustActor(c)
		if !ok {
			return
		}
		appID, ok := ParseUUIDParam(c, param, "Invalid application ID format")
		if !ok {
			return
		}
		if err := apps.AuthorizeDelete(c.Request.Context(), actor, appID); err != nil {
			apierror.Respond(c, err, "checking application access")
			return
		}
		c.Next()
	}
}

// ParseUUIDParam parses the path parameter or aborts with 400.
func ParseUUIDParam(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		apierror.BadRequest(c, message, nil)
		return uuid.Nil, false
	}
	return id, true
}
