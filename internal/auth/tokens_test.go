package auth

import (
	"context"
	"testing"
	"time"

	"job-board-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestUser() *models.User {
	return &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: models.RoleEmployer, Company: "Acme"}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, NewMemoryRevoker())
	user := newTestUser()

	token, expiresAt, err := m.Generate(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, claims.Role)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, NewMemoryRevoker())
	token, _, err := m.Generate(newTestUser())
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("other-secret", time.Hour, NewMemoryRevoker()).Generate(newTestUser())
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour, NewMemoryRevoker()).Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		Role: models.RoleJobSeeker,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour, NewMemoryRevoker()).Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Revoke(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, NewMemoryRevoker())
	token, _, err := m.Generate(newTestUser())
	require.NoError(t, err)

	claims, err := m.Parse(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, m.Revoke(context.Background(), claims))

	_, err = m.Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	other, _, err := m.Generate(newTestUser())
	require.NoError(t, err)
	_, err = m.Parse(context.Background(), other)
	assert.NoError(t, err, "revoking one token must not affect others")
}

func TestMemoryRevoker_Expiry(t *testing.T) {
	r := NewMemoryRevoker()
	now := time.Now()
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(context.Background(), "jti-1", time.Minute))
	revoked, err := r.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = r.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
