package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-board-api/internal/auth"
	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful register or login.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type userService struct {
	repo      storage.UserRepository
	tokens    *auth.TokenManager
	validator *validator.Validate
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo storage.UserRepository, tokens *auth.TokenManager, validate *validator.Validate) UserService {
	return &userService{
		repo:      repo,
		tokens:    tokens,
		validator: validate,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*Session, error) {
	req.Email = openapi_types.Email(normalizeEmail(string(req.Email)))
	req.Name = strings.TrimSpace(req.Name)
	req.Company = strings.TrimSpace(req.Company)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("UserService: Error hashing password: %v", err)
		return nil, fmt.Errorf("%w: hashing password: %v", ErrInternal, err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        string(req.Email),
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if req.Role == models.RoleEmployer {
		user.Company = req.Company
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		log.Printf("UserService: Error creating user: %v", err)
		return nil, MapRepoError(err, "creating user")
	}
	return s.session(created)
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", req.Email)
			return nil, ErrInvalidCredentials
		}
		log.Printf("Error fetching user by email %s during login: %v", req.Email, err)
		return nil, MapRepoError(err, "login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", req.Email)
		return nil, ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *userService) session(user *models.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		log.Printf("Error generating JWT token for user %s: %v", user.Email, err)
		return nil, fmt.Errorf("%w: generating token: %v", ErrInternal, err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "getting user")
	}
	return user, nil
}

// Logout revokes the token described by claims.
func (s *userService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		log.Printf("UserService: Error revoking token %s: %v", claims.ID, err)
		return fmt.Errorf("%w: revoking token: %v", ErrInternal, err)
	}
	return nil
}
