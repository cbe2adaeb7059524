package middleware

import (
	"strings"

	"github.com/caseflow/caseflow/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID is the context key for the per-request audit ID.
const ContextRequestID = "request_id"

// Audit tags every request with a request ID and records write operations
// and report invocations to system_logs.
func Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		// Reads are not audited; report invocations arrive as POST.
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "DELETE" {
			return
		}

		userID := GetUserID(c)
		var uid *uint
		if userID > 0 {
			uid = &userID
		}

		module, action := parseRouteInfo(c.FullPath(), method)
		services.LogInfo(module, action, auditMessage(GetUsername(c), method, c.Request.URL.Path, c.Writer.Status()),
			uid, c.ClientIP(), requestID, map[string]interface{}{
				"method": method,
				"path":   c.Request.URL.Path,
				"status": c.Writer.Status(),
			})
	}
}

// GetRequestID gets the current request ID from context
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(ContextRequestID); exists {
		return id.(string)
	}
	return ""
}

// parseRouteInfo extracts module and action from a Gin route pattern.
// e.g. "/api/reports/health" + "POST" -> module="reports", action="health"
func parseRouteInfo(fullPath, method string) (module, action string) {
	path := strings.TrimPrefix(fullPath, "/api/")
	parts := strings.SplitN(path, "/", 3)
	module = parts[0]
	if module == "" {
		module = "unknown"
	}
	if len(parts) > 1 && parts[1] != "" && !strings.HasPrefix(parts[1], ":") {
		action = parts[1]
		return module, action
	}

	switch method {
	case "POST":
		action = "create"
	case "PUT":
		action = "update"
	case "DELETE":
		action = "delete"
	default:
		action = strings.ToLower(method)
	}
	return module, action
}

func auditMessage(username, method, path string, status int) string {
	var b strings.Builder
	b.WriteString(username)
	b.WriteString(" ")
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(path)
	if status >= 200 && status < 300 {
		b.WriteString(" ok")
	} else {
		b.WriteString(" failed")
	}
	return b.String()
}
