package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/constants"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/services"
)

// TokenVerifier validates a bearer token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// RequireAuth checks the bearer token in the Authorization header
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			apierrors.InvalidToken(c, "Invalid authorization format. Use 'Bearer <token>'")
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			apierrors.InvalidToken(c, "Invalid or expired token")
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.ID)
		c.Set(constants.ContextKeyRole, claims.Role)
		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetRole retrieves the current user role from context
func GetRole(c *gin.Context) (models.Role, bool) {
	role, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return "", false
	}

	switch v := role.(type) {
	case models.Role:
		return v, v.Valid()
	case string:
		r := models.Role(v)
		return r, r.Valid()
	default:
		return "", false
	}
}

// GetActor returns the authenticated caller
func GetActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return services.Actor{}, false
	}
	role, ok := GetRole(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID, Role: role}, true
}
