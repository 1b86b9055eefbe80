package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/labor-report-api/internal/constants"
	"github.com/yukikurage/labor-report-api/internal/database"
	apierrors "github.com/yukikurage/labor-report-api/internal/errors"
	"github.com/yukikurage/labor-report-api/internal/models"
)

// RequirePrincipal loads the session user's record and stores it in the
// context for handlers. The record is re-read on every request, so a user
// deactivated mid-session loses access on their next call.
func RequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "Session user no longer exists")
			c.Abort()
			return
		}
		if !user.Active {
			apierrors.Forbidden(c, "User is inactive")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, user)
		c.Next()
	}
}

// RequireAdmin restricts a route to administrator principals. Must run after
// RequirePrincipal.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !principal.IsAdmin() {
			apierrors.Forbidden(c, "Administrator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the loaded principal from context
func GetPrincipal(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	user, ok := value.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}
