// Package apierror translates service errors into HTTP responses.
package apierror

import (
	"errors"
	"net/http"

	"job-board-api/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Status returns the HTTP status for a service error.
func Status(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Respond aborts the request with the status and body for err. Internal errors are logged
// under op and their message is hidden from the client.
func Respond(c *gin.Context, err error, op string) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("op", op).Error("Request failed")
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		body["error"] = vErr.Message
		if len(vErr.Fields) > 0 {
			body["details"] = vErr.Fields
		}
	}
	c.AbortWithStatusJSON(status, body)
}

// BadRequest aborts with a 400 for input the handler could not decode.
func BadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = gin.H{"body": err.Error()}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
