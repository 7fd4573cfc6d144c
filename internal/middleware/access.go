package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/models"
)

// RequireRole lets the request through only when the caller has one of roles.
// Must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Access denied. Insufficient permissions.")
	}
}

// RequireSelfOrAdmin lets admins through, and users only when the URL parameter
// param names their own identifier.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		targetID, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user ID")
			return
		}

		if !actor.IsAdmin() && actor.UserID != targetID {
			apierrors.Forbidden(c, "You can only access your own data")
			return
		}

		c.Next()
	}
}
