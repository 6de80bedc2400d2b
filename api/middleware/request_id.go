// api/middleware/request_id.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "requestId"

// RequestIDMiddleware tags each request with a uuid for log correlation.
// An incoming X-Request-ID is honored so upstream proxies can trace too.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestID returns the id assigned to this request, or "" if the middleware
// did not run.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
