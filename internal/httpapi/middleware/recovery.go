package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatbotbro/backend/internal/common"
)

// Recovery converts handler panics into the standard 500 error envelope. The
// recovered value's string form goes into the body, matching the API's
// existing contract for unexpected failures.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				common.Fail(c, http.StatusInternalServerError, fmt.Sprint(r))
				c.Abort()
			}
		}()
		c.Next()
	}
}
