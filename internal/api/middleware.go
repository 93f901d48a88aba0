package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/utils"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.NewLogger(c.Request.Context()).Infof(
			"%s %s status=%d latency_ms=%d",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
		)
	}
}

func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log := logging.NewLogger(c.Request.Context())
				log.Errorf("panic: %v", r)
				utils.PrintStack("recovered from handler panic", log)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
