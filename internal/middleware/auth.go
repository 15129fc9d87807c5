package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/HongNam0207/taskhome-api/internal/constants"
	"github.com/HongNam0207/taskhome-api/internal/database"
	apierrors "github.com/HongNam0207/taskhome-api/internal/errors"
	"github.com/HongNam0207/taskhome-api/internal/models"
)

// Caller is the resolved identity of the requesting user. It is built
// once per request by RequireAuth; nothing downstream reads session or
// claim values directly.
type Caller struct {
	UserID uint64
	Role   models.RoleName
}

// RequireAuth resolves the session into a Caller. It rejects requests
// with no session, an unknown user, or a deactivated account.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		rawUserID := session.Get(constants.ContextKeyUserID)

		userID, ok := asUint64(rawUserID)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().Preload("Role").First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !user.IsActive {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCaller, Caller{
			UserID: user.ID,
			Role:   user.Role.Name,
		})
		c.Next()
	}
}

// RequireRoles allows the request only when the caller's role is in the
// given set. Role sets come from configuration, not from hardcoded
// per-handler rules.
func RequireRoles(roles []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if _, ok := allowed[string(caller.Role)]; !ok {
			apierrors.Forbidden(c, "Insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCaller retrieves the resolved caller from context.
func GetCaller(c *gin.Context) (Caller, bool) {
	value, exists := c.Get(constants.ContextKeyCaller)
	if !exists {
		return Caller{}, false
	}

	caller, ok := value.(Caller)
	return caller, ok
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (uint64, bool) {
	caller, ok := GetCaller(c)
	if !ok {
		return 0, false
	}
	return caller.UserID, true
}

func asUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
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
