package models_test

import (
	"testing"

	"job-board-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	for _, s := range []string{"pending", "reviewed", "accepted", "rejected"} {
		status, err := models.ParseApplicationStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(status))
	}

	for _, s := range []string{"", "Pending", "hired", "accepted "} {
		_, err := models.ParseApplicationStatus(s)
		assert.Error(t, err, "status %q", s)
	}
}

func TestApplicationStatus_Scan(t *testing.T) {
	var s models.ApplicationStatus
	require.NoError(t, s.Scan([]byte("reviewed")))
	assert.Equal(t, models.ApplicationStatusReviewed, s)

	assert.Error(t, s.Scan("archived"))
	assert.Error(t, s.Scan(42))
	assert.Equal(t, models.ApplicationStatusReviewed, s, "failed scan must not overwrite the value")
}

func TestJobEnums(t *testing.T) {
	assert.True(t, models.JobType("Full-time").Valid())
	assert.False(t, models.JobType("full-time").Valid())
	assert.True(t, models.Category("Customer Support").Valid())
	assert.False(t, models.Category("Support").Valid())

	var c models.Category
	assert.Error(t, c.Scan("Engineering"))
	require.NoError(t, c.Scan("Design"))
	assert.Equal(t, models.CategoryDesign, c)
}

func TestRole(t *testing.T) {
	assert.True(t, models.RoleEmployer.Valid())
	assert.False(t, models.Role("admin").Valid())

	var r models.Role
	require.NoError(t, r.Scan("jobseeker"))
	assert.Equal(t, models.RoleJobSeeker, r)
}
