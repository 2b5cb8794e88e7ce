package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
)

const loggerKey = "logger"

// quietPaths are probed constantly by orchestrators and scrapers; successful
// hits are logged at debug level only.
var quietPaths = []string{"/health", "/metrics"}

// Logger logs every request with its route, status and latency. A
// request-scoped child logger is stored in the context for handlers.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestLogger := log.WithRequestID(GetRequestID(c))
		c.Set(loggerKey, requestLogger)

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if len(c.Request.URL.RawQuery) > 0 {
			fields["query"] = c.Request.URL.RawQuery
		}
		var lastErr error
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
			lastErr = c.Errors.Last().Err
		}

		switch {
		case statusCode >= 500:
			requestLogger.Error("Request completed with server error", lastErr, fields)
		case statusCode >= 400:
			requestLogger.Warn("Request completed with client error", fields)
		case isQuietPath(c.Request.URL.Path):
			requestLogger.Debug("Request completed", fields)
		default:
			requestLogger.Info("Request completed", fields)
		}
	}
}

func isQuietPath(path string) bool {
	for _, p := range quietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// GetLogger retrieves the request logger from the Gin context.
// Returns nil if not found.
func GetLogger(c *gin.Context) *logger.Logger {
	if log, exists := c.Get(loggerKey); exists {
		if l, ok := log.(*logger.Logger); ok {
			return l
		}
	}
	return nil
}
