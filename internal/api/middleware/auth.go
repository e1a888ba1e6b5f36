package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"job-board-api/internal/auth"
	"job-board-api/internal/models"
	"job-board-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	authorizationHeader = "Authorization"
	actorCtx            = "actor"  // Key to store the authenticated actor in context
	claimsCtx           = "claims" // Key to store the parsed token claims in context
)

// UserLookup loads the identity behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// JWTAuthMiddleware authenticates the bearer token and stores the actor in the context.
// Revoked tokens and tokens of deleted users are rejected.
func JWTAuthMiddleware(tokens *auth.TokenManager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		claims, err := tokens.Parse(c.Request.Context(), headerParts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			case errors.Is(err, auth.ErrTokenRevoked):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			case errors.Is(err, auth.ErrInvalidToken):
				log.Debugf("Auth middleware: Error parsing token: %v", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			default:
				log.Printf("Auth middleware: Error checking token: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identifier in token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
				return
			}
			log.Printf("Auth middleware: Error loading user %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(actorCtx, user.Actor())
		c.Set(claimsCtx, claims)
		c.Next()
	}
}

// GetActorFromContext returns the actor stored by JWTAuthMiddleware.
func GetActorFromContext(c *gin.Context) (models.Actor, error) {
	actorAny, exists := c.Get(actorCtx)
	if !exists {
		return models.Actor{}, errors.New("actor not found in context")
	}

	actor, ok := actorAny.(models.Actor)
	if !ok {
		return models.Actor{}, errors.New("actor in context is of invalid type")
	}

	return actor, nil
}

func GetClaimsFromContext(c *gin.Context) (*auth.Claims, error) {
	claimsAny, exists := c.Get(claimsCtx)
	if !exists {
		return nil, errors.New("claims not found in context")
	}
	claims, ok := claimsAny.(*auth.Claims)
	if !ok {
		return nil, errors.New("claims in context are of invalid type")
	}
	return claims, nil
}

// MustActor returns the actor or aborts with 401 when the route was registered without authentication.
func MustActor(c *gin.Context) (models.Actor, bool) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		log.Printf("Error getting actor from context: %v", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return models.Actor{}, false
	}
	return actor, true
}
