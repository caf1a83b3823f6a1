package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/pdv_backoffice/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware tracks successful API calls of authenticated users.
// Shift polling is skipped: terminals poll every few seconds.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if strings.HasSuffix(c.FullPath(), "/shift/transactions") {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := routeEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if role, ok := GetUserRoleFromContext(c); ok {
			props["role"] = string(role)
		}
		if terminalID := c.Param("terminal_id"); terminalID != "" {
			props["terminal_id"] = terminalID
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// routeEventName turns "POST /api/v1/terminals/:terminal_id/shift/close" into
// "post_api_v1_terminals_shift_close". Unmatched routes yield "".
func routeEventName(method, route string) string {
	if route == "" {
		return ""
	}
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(strings.Trim(route, "/"), "/") {
		if seg == "" || strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	return strings.Join(parts, "_")
}
