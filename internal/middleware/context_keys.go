package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
)

// GetUserIDFromContext retrieves the caller identity from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext retrieves the numeric role set by the role gate.
func GetRoleFromContext(c *gin.Context) (int, bool) {
	roleVal, exists := c.Get(string(roleKey))
	if !exists {
		if v := c.Request.Context().Value(roleKey); v != nil {
			return v.(int), true
		}
		return 0, false
	}
	role, ok := roleVal.(int)
	if !ok {
		return 0, false
	}
	return role, true
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func withRole(ctx context.Context, role int) context.Context {
	return context.WithValue(ctx, roleKey, role)
}
