package dto

import (
	"time"

	"job-board-api/internal/models"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RegisterRequest defines the structure for creating a new account.
type RegisterRequest struct {
	Name     string              `json:"name" validate:"required,max=100"`
	Email    openapi_types.Email `json:"email" validate:"required,email"`
	Password string              `json:"password" validate:"required,min=6,max=72"` // bcrypt ignores bytes past 72
	Role     models.Role         `json:"role" validate:"required,role"`
	Company  string              `json:"company" validate:"required_if=Role employer,max=200"`
}

// LoginRequest defines the structure for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Company   string      `json:"company,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserSummary is the projection of a user embedded in job and application responses.
type UserSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name,omitempty"`
	Email   string    `json:"email,omitempty"`
	Company string    `json:"company,omitempty"`
}
