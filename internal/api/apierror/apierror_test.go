package apierror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"job-board-api/internal/api/apierror"
	"job-board-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: &services.ValidationError{Message: "bad"}, want: http.StatusBadRequest},
		{err: services.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: fmt.Errorf("%w: cannot apply to own job", services.ErrForbidden), want: http.StatusForbidden},
		{err: fmt.Errorf("%w: getting job", services.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("%w: already applied", services.ErrConflict), want: http.StatusConflict},
		{err: fmt.Errorf("%w: too many applications", services.ErrRateLimited), want: http.StatusTooManyRequests},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, apierror.Status(tt.err), tt.err.Error())
	}
}

func respond(err error) (*httptest.ResponseRecorder, map[string]any) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	apierror.Respond(c, err, "test")

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRespond_ValidationDetails(t *testing.T) {
	w, body := respond(&services.ValidationError{Message: "invalid request", Fields: map[string]string{"resume": "must be a URL"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request", body["error"])
	assert.Equal(t, map[string]any{"resume": "must be a URL"}, body["details"])
}

func TestRespond_HidesInternalErrors(t *testing.T) {
	w, body := respond(errors.New("connection refused to 10.0.0.3"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["error"])
}
