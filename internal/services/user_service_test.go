package services_test

import (
	"context"
	"testing"
	"time"

	"job-board-api/internal/auth"
	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/storage/memory"
	"job-board-api/internal/transport/dto"
	"job-board-api/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupUserServiceTest(t *testing.T) (context.Context, services.UserService, *auth.TokenManager, *memory.Store) {
	t.Helper()
	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", time.Hour, auth.NewMemoryRevoker())
	return context.Background(), services.NewUserService(store.Users(), tokens, validation.New()), tokens, store
}

func TestUserService_Register(t *testing.T) {
	ctx, svc, tokens, store := setupUserServiceTest(t)

	session, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ada", Email: "  Ada@Example.com ", Password: "secret1", Role: models.RoleEmployer, Company: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, "Acme", session.User.Company)
	assert.NotEmpty(t, session.Token)

	stored, err := store.Users().GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	claims, err := tokens.Parse(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, claims.Role)
}

func TestUserService_Register_JobSeekerDropsCompany(t *testing.T) {
	ctx, svc, _, _ := setupUserServiceTest(t)

	session, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Grace", Email: "grace@example.com", Password: "secret1", Role: models.RoleJobSeeker, Company: "Navy",
	})
	require.NoError(t, err)
	assert.Empty(t, session.User.Company)
}

func TestUserService_Register_Errors(t *testing.T) {
	ctx, svc, _, _ := setupUserServiceTest(t)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: models.RoleJobSeeker})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *dto.RegisterRequest
		wantErr error
	}{
		{name: "duplicate email", req: &dto.RegisterRequest{Name: "Ada", Email: "ADA@example.com", Password: "secret1", Role: models.RoleJobSeeker}, wantErr: services.ErrConflict},
		{name: "short password", req: &dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "123", Role: models.RoleJobSeeker}, wantErr: services.ErrValidation},
		{name: "unknown role", req: &dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: "admin"}, wantErr: services.ErrValidation},
		{name: "employer without company", req: &dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: models.RoleEmployer}, wantErr: services.ErrValidation},
		{name: "employer with blank company", req: &dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: models.RoleEmployer, Company: "   "}, wantErr: services.ErrValidation},
		{name: "blank name", req: &dto.RegisterRequest{Name: " \t ", Email: "bob@example.com", Password: "secret1", Role: models.RoleJobSeeker}, wantErr: services.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials, "no rejected registration may leave a user behind")
}

func TestUserService_Register_TrimsNameAndCompany(t *testing.T) {
	ctx, svc, _, store := setupUserServiceTest(t)

	session, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "  Ada  ", Email: "ada@example.com", Password: "secret1", Role: models.RoleEmployer, Company: " Acme ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", session.User.Name)

	stored, err := store.Users().GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Company)
}

func TestUserService_Login(t *testing.T) {
	ctx, svc, _, _ := setupUserServiceTest(t)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: models.RoleJobSeeker})
	require.NoError(t, err)

	session, err := svc.Login(ctx, &dto.LoginRequest{Email: "Ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", session.User.Name)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Logout(t *testing.T) {
	ctx, svc, tokens, _ := setupUserServiceTest(t)

	session, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: models.RoleJobSeeker})
	require.NoError(t, err)

	claims, err := tokens.Parse(ctx, session.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, claims))

	_, err = tokens.Parse(ctx, session.Token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}
