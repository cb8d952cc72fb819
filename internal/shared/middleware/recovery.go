package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/logger"
)

// Recovery turns panics into a 500 envelope so one bad request cannot
// take the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					fmt.Errorf("request %s: %v", c.GetString("request_id"), rec))
				response.InternalServerError(c, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
