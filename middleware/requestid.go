package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header that carries the correlation id on both
// requests and responses.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a correlation id and echoes it on the
// response. An id supplied by the caller is kept so traces survive proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}

// GetRequestID extracts the request id from the Gin context
func GetRequestID(c *gin.Context) string {
	id, exists := c.Get("request_id")
	if !exists {
		return ""
	}

	idStr, ok := id.(string)
	if !ok {
		return ""
	}

	return idStr
}
