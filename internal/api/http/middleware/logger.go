package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	infralog "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
)

// Logger 记录每个请求的结构化日志
func Logger(logger infralog.Logger) gin.HandlerFunc {
	zl := zap.NewNop()
	if logger != nil && logger.GetZapLogger() != nil {
		zl = logger.GetZapLogger()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			zl.Error("HTTP request", fields...)
		case c.Writer.Status() >= 400:
			zl.Warn("HTTP request", fields...)
		default:
			zl.Debug("HTTP request", fields...)
		}
	}
}
