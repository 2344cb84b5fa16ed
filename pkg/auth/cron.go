package auth

import (
	"net/http"
	"strings"

	"bias_notifier/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// CronAuth guards the trigger endpoints with a static shared secret. The
// external cron caller sends it as "Authorization: Bearer <secret>".
type CronAuth struct {
	secret string
}

func NewCronAuth(secret string) *CronAuth {
	return &CronAuth{secret: secret}
}

func (a *CronAuth) CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if a.secret == "" || header == token || token != a.secret {
			log.Info("rejected cron trigger",
				zap.String("path", c.Request.URL.Path),
				zap.String("remote_addr", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
