package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shiomura/team-task-api/internal/constants"
	"github.com/shiomura/team-task-api/internal/database"
	apierrors "github.com/shiomura/team-task-api/internal/errors"
	"github.com/shiomura/team-task-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireActiveUser loads the authenticated user and rejects anyone whose
// status is not active. Pending and suspended accounts hold no operational
// privileges regardless of role.
func RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "Account no longer exists")
			c.Abort()
			return
		}

		if !user.IsActive() {
			apierrors.Forbidden(c, "Your account is not active")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCurrentUser, user)
		c.Next()
	}
}

// RequireSuperAdmin gates user-administration routes. Must run after
// RequireActiveUser.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		if user.Role != models.RoleSuperAdmin {
			apierrors.Forbidden(c, "Only super admins can perform this action")
			c.Abort()
			return
		}

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

// GetCurrentUser retrieves the loaded user record from context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := userInterface.(models.User)
	return user, ok
}
