package middleware

import (
	"net/http"
	"strings"

	"job-board-api/internal/metrics"
	"job-board-api/internal/models"
	"job-board-api/internal/policy"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the actor holds one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	message := "This action requires the role: " + strings.Join(names, " or ")

	return func(c *gin.Context) {
		actor, ok := MustActor(c)
		if !ok {
			return
		}
		if !policy.HasRole(actor, roles...) {
			metrics.RecordPolicyDenial("has_role")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": message})
			return
		}
		c.Next()
	}
}
