package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ReadOnlyMethods is the method set for services that never accept writes.
var ReadOnlyMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}

// CORS handles Cross-Origin Resource Sharing for the allowed origins. When no
// methods are given every method the management API uses is allowed.
func CORS(allowedOrigins []string, methods ...string) gin.HandlerFunc {
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}

	config := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     methods,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	return cors.New(config)
}
