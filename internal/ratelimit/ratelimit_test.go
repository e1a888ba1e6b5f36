package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"job-board-api/internal/ratelimit"

	"github.com/stretchr/testify/assert"
)

func TestLocalLimiter_PerKey(t *testing.T) {
	ctx := context.Background()
	l := ratelimit.NewLocalLimiter(2, time.Hour)

	assert.True(t, l.Allow(ctx, "a"))
	assert.True(t, l.Allow(ctx, "a"))
	assert.False(t, l.Allow(ctx, "a"), "third call inside the window must be rejected")

	assert.True(t, l.Allow(ctx, "b"), "keys are limited independently")
}

func TestLocalLimiter_EmptyKeyAlwaysAllowed(t *testing.T) {
	l := ratelimit.NewLocalLimiter(1, time.Hour)
	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(context.Background(), ""))
	}
}

func TestNew_WithoutRedisIsLocal(t *testing.T) {
	l := ratelimit.New(nil, "apply:", 1, time.Minute)
	assert.IsType(t, &ratelimit.LocalLimiter{}, l)
}
