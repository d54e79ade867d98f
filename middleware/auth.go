package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/services"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUser  = "user"
	CtxRoles = "roles"
)

// RequireAuth validates the bearer credential and resolves it to a user
// identity and role set. Handlers behind it never see raw credentials;
// they read the resolved username from the context.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.Unauthorized("Unauthorized"))
			return
		}

		claims, err := tokens.ValidateAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, apperrors.Forbidden("Forbidden"))
			return
		}

		c.Set(CtxUser, claims.Username)
		c.Set(CtxRoles, claims.Roles)
		c.Next()
	}
}

// RequireAdmin checks role membership, case-insensitively, after
// RequireAuth has resolved the identity.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(CtxRoles)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.Unauthorized("Unauthorized"))
			return
		}

		roles, _ := raw.([]string)
		if !HasRole(roles, "admin") {
			c.AbortWithStatusJSON(http.StatusForbidden, apperrors.Forbidden("Forbidden"))
			return
		}
		c.Next()
	}
}

// HasRole reports membership with lowercase normalization at the
// comparison boundary.
func HasRole(roles []string, role string) bool {
	role = strings.ToLower(role)
	for _, r := range roles {
		if strings.ToLower(r) == role {
			return true
		}
	}
	return false
}

// Username returns the authenticated username from the gin context.
func Username(c *gin.Context) string {
	return c.GetString(CtxUser)
}
