package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
)

// Identity headers set by the upstream authentication gateway.
const (
	HeaderUserID          = "X-User-ID"
	HeaderUserName        = "X-User-Name"
	HeaderUserRole        = "X-User-Role"
	HeaderUserInstitution = "X-User-Institution"
)

const callerKey = "gva.caller"

// ZapLogger logs one line per completed request.
func ZapLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if caller, ok := Caller(c); ok {
			fields = append(fields, zap.String("user_id", caller.ID))
		}
		logger.Info("request completed", fields...)
	}
}

// Identity reads the gateway headers into the request context. Requests
// without a user id or with an unknown role are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}

		role := models.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		switch role {
		case models.RoleVeterinarian, models.RoleAdmin, models.RoleParavet:
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unsupported user role"})
			return
		}

		c.Set(callerKey, models.Author{
			ID:          id,
			Name:        strings.TrimSpace(c.GetHeader(HeaderUserName)),
			Role:        role,
			Institution: strings.TrimSpace(c.GetHeader(HeaderUserInstitution)),
		})
		c.Next()
	}
}

// RequireRole lets only the listed roles through. Must run after Identity.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// Caller returns the identity attached by Identity.
func Caller(c *gin.Context) (models.Author, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Author{}, false
	}
	author, ok := v.(models.Author)
	return author, ok
}
