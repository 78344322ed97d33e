package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flipvault-web/plancache"
	"flipvault-web/storage"
	"flipvault-web/utils"
)

// SessionAuth validates the bearer session token and puts the session
// identity into the gin context. The token must also match the stored
// session copy: logout deletes that copy, which revokes the bearer on
// every authenticated route at once. Entitlement is RequirePaidPlan's job.
func SessionAuth(secret string, plans *plancache.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		stored, err := plans.SessionStore(claims.Username).Get(c.Request.Context(), storage.KeyToken)
		if err != nil || stored != tokenString {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("username", claims.Username)
		c.Set("is_admin", claims.Admin)
		c.Set("session_token", tokenString)
		c.Next()
	}
}

// RequireAdmin gates the admin group on the admin claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
