package httpserver

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PratikDhanave/pet-feeder-service/internal/config"
	"github.com/PratikDhanave/pet-feeder-service/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// requestID propagates X-Request-ID or assigns a fresh UUID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(logging.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// corsMiddleware returns nil when no origins are configured.
// "*" allows any origin but then credentials are not allowed.
func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowedOrigins) == 0 {
		return nil
	}

	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-API-Key", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			cc.AllowOrigins = nil
			return cors.New(cc)
		}
		// Browsers send Origin without a trailing slash.
		cc.AllowOrigins = append(cc.AllowOrigins, strings.TrimSuffix(o, "/"))
	}
	cc.AllowCredentials = true
	return cors.New(cc)
}
