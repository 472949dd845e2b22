package middleware

import (
	"time"

	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger logs each request with a generated request id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("requestId", requestID)
		c.Header("X-Request-Id", requestID)

		c.Next()

		event := utils.Logger.Info()
		if c.Writer.Status() >= 400 {
			event = utils.Logger.Error()
		}
		event.
			Str("requestId", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("clientIp", c.ClientIP()).
			Msg("request")
	}
}
