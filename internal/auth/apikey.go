package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientCtxKey is the Gin context key used to store the authenticated client name.
const clientCtxKey = "client_name"

// APIKeyMiddleware maps X-API-Key to a client name (a panel, a feeder's
// firmware, a cron agent). With no keys configured every request passes,
// which matches the unauthenticated device contract.
func APIKeyMiddleware(keys map[string]string) gin.HandlerFunc {
	if len(keys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader("X-API-Key"))
		name, ok := lookup(keys, apiKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(clientCtxKey, name)
		c.Next()
	}
}

// lookup compares in constant time so key prefixes cannot be probed by timing.
func lookup(keys map[string]string, apiKey string) (string, bool) {
	if apiKey == "" {
		return "", false
	}
	var found string
	ok := false
	for k, name := range keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(apiKey)) == 1 {
			found, ok = name, true
		}
	}
	return found, ok
}

// ClientName returns the authenticated client name, or "" when auth is off.
func ClientName(c *gin.Context) string {
	v, _ := c.Get(clientCtxKey)
	s, _ := v.(string)
	return s
}
