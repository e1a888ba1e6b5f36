package handlers

import (
	"net/http"

	"job-board-api/internal/api/apierror"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the service dependency for account operations
type UserHandler struct {
	service services.UserService
}

// NewUserHandler creates a new UserHandler with the given service
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func sessionResponse(s *services.Session) dto.AuthResponse {
	return dto.AuthResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: MapUserToResponse(s.User)}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates a job seeker or employer account and returns a token. Company is required for employers.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body      dto.RegisterRequest true "Account details"
// @Success      201  {object}  dto.AuthResponse
// @Failure      400  {object}  map[string]string "Validation failed"
// @Failure      409  {object}  map[string]string "User already exists"
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "Invalid request body", err)
		return
	}

	session, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		apierror.Respond(c, err, "register")
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(session))
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.LoginRequest true "Email and password"
// @Success      200  {object}  dto.AuthResponse
// @Failure      401  {object}  map[string]string "Invalid credentials"
// @Failure      429  {object}  map[string]string "Too many attempts"
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "Invalid request body", err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		apierror.Respond(c, err, "login")
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// Verify godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]dto.UserResponse
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Router       /auth/verify [get]
// @Security     BearerAuth
func (h *UserHandler) Verify(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		apierror.Respond(c, err, "verify")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": MapUserToResponse(user)})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented token for the rest of its lifetime.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *UserHandler) Logout(c *gin.Context) {
	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		apierror.Respond(c, err, "logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
