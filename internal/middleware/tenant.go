package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantGuard ensures a usable tenant context is present before any
// tenant-scoped handler runs. It relies on AuthMiddleware having already
// set the tenant_id from the token claims.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextKeyTenantID)
		if !exists {
			abortTenantRequired(c)
			return
		}
		tenantID, ok := v.(uuid.UUID)
		if !ok || tenantID == uuid.Nil {
			abortTenantRequired(c)
			return
		}
		c.Next()
	}
}

func abortTenantRequired(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": "tenant context required"},
	})
}
