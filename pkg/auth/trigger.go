package auth

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"habitcircle_backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TriggerAuth guards the trigger endpoints with the shared secret the
// scheduler and event pushers are configured to send.
type TriggerAuth struct {
	secret string
}

func NewTriggerAuth(secret string) *TriggerAuth {
	return &TriggerAuth{
		secret: secret,
	}
}

func (t *TriggerAuth) TriggerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if !hmac.Equal([]byte(token), []byte(t.secret)) {
			log.Info("invalid trigger token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid trigger token"})
			return
		}

		c.Next()
	}
}
