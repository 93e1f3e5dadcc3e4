package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pismo-account-backend/internal/services"
	"pismo-account-backend/internal/utils"
)

// Context keys populated by AuthMiddleware.
const (
	IdentityKey = "identity"
	UserKey     = "user"
)

// AuthIdentity is the verified caller attached to the request context. It is
// set once by AuthMiddleware and read-only afterwards.
type AuthIdentity struct {
	Subject string
	Roles   []string
	Enabled bool
}

func (id AuthIdentity) HasRole(name string) bool {
	for _, role := range id.Roles {
		if role == name {
			return true
		}
	}
	return false
}

// AuthMiddleware verifies the bearer token on every protected route and
// attaches the resolved identity to the request context. Any failure rejects
// the request with 401 before a handler runs.
func AuthMiddleware(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		claims, err := tm.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired token"))
			c.Abort()
			return
		}

		user, err := services.FindUserByUsername(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
			c.Abort()
			return
		}

		if !user.Enabled {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User account is disabled"))
			c.Abort()
			return
		}

		c.Set(IdentityKey, AuthIdentity{
			Subject: user.Username,
			Roles:   claims.Roles,
			Enabled: user.Enabled,
		})
		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireRole rejects with 403 any authenticated caller whose token does not
// carry the given role. It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(IdentityKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
			c.Abort()
			return
		}

		identity := value.(AuthIdentity)
		if !identity.HasRole(role) {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Insufficient role"))
			c.Abort()
			return
		}

		c.Next()
	}
}
