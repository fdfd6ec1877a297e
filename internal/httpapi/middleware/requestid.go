package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/chatbotbro/backend/internal/common"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID stamps each request with a ULID unless the client supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			if id, err := common.NewULID(); err == nil {
				rid = id
			}
		}
		c.Set(RequestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
