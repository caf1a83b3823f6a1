package middleware

import (
	"context"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Using a custom type prevents collisions.
type contextKey string

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey   = contextKey("userID")
	userNameKey = contextKey("userName")
	userRoleKey = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		return GetUserIDFromCtx(c.Request.Context())
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserNameFromContext returns the display name from the token, falling
// back to the user ID when the token carried none.
func GetUserNameFromContext(c *gin.Context) string {
	if name, ok := c.Request.Context().Value(userNameKey).(string); ok && name != "" {
		return name
	}
	userID, _ := GetUserIDFromContext(c)
	return userID
}

// GetUserRoleFromContext retrieves the caller's role set by AuthMiddleware.
func GetUserRoleFromContext(c *gin.Context) (domain.Role, bool) {
	role, ok := c.Request.Context().Value(userRoleKey).(domain.Role)
	return role, ok
}
