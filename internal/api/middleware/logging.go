package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shubham-309/chatbot/internal/logger"
)

// RequestLogger logs method, path, status and latency of every request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		line := fmt.Sprintf("%s %s %d %s", c.Request.Method, path, status, time.Since(start).Round(time.Microsecond))
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			line += " " + errs
		}

		switch {
		case status >= 500:
			log.Error(line)
		case status >= 400:
			log.Warn(line)
		default:
			log.Info(line)
		}
	}
}
