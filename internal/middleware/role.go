package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// RoleHeader carries the caller's numeric role. The value is trusted as-is;
	// there is no session system in front of this API.
	RoleHeader = "X-User-Role"
	// UserIDHeader optionally carries the caller identity for audit fields.
	UserIDHeader = "X-User-ID"

	// maxMutatingRole is the highest role value allowed to mutate resources.
	maxMutatingRole = 2
)

// RoleGate creates a Gin middleware that authorizes mutating requests from the
// role header. A missing, non-numeric or too-high role is rejected with 401.
// Read requests pass through untouched.
func RoleGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Identity is captured for audit on every request, gated or not.
		if userID := c.GetHeader(UserIDHeader); userID != "" {
			c.Set(string(userIDKey), userID)
			c.Request = c.Request.WithContext(withUserID(c.Request.Context(), userID))
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		raw := c.GetHeader(RoleHeader)
		if raw == "" {
			logger.Warn("Role header missing on mutating request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "role header required"})
			return
		}

		role, err := strconv.Atoi(raw)
		if err != nil {
			logger.Warn("Role header is not numeric", "role", raw)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "role header must be numeric"})
			return
		}

		if role > maxMutatingRole {
			logger.Warn("Role not permitted to mutate", "role", role)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient role"})
			return
		}

		c.Set(string(roleKey), role)
		c.Request = c.Request.WithContext(withRole(c.Request.Context(), role))
		c.Next()
	}
}
