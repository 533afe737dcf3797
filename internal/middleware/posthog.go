package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/trade_journal_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathPrefixesToSkip contains paths that should not be tracked by PostHog
var pathPrefixesToSkip = []string{"/health", "/swagger/"}

func skipTracking(path string) bool {
	for _, prefix := range pathPrefixesToSkip {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// routeEventName turns a route template into an event name,
// e.g. "/api/v1/entries/:entryID" -> "api_v1_entries_entryID".
func routeEventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, ":", "")
	return strings.ReplaceAll(name, "/", "_")
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || skipTracking(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// Unmatched routes have no template.
		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if entryID := c.Param("entryID"); entryID != "" {
			props["entry_id"] = entryID
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom event on behalf of the authenticated user.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(userID, eventName, properties)
}
