package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sathiel13/server-REP-X/models"
)

// RequireAdmin must run after ValidateToken. A valid token without the admin
// capability is rejected with 403.
func RequireAdmin(c *gin.Context) {
	roleVal, exists := c.Get("role")
	role, ok := roleVal.(models.Role)
	if !exists || !ok || !role.CanManageStore() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		c.Abort()
		return
	}
	c.Next()
}
