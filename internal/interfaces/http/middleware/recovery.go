package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"polydoc-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into 500 responses with the stack logged
// server-side.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", err),
					"stack", stack,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()

		c.Next()
	}
}
