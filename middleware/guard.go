package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flipvault-web/metrics"
	"flipvault-web/plancache"
)

// RequirePaidPlan gates paid-only routes behind the entitlement check.
// SessionAuth has already matched the bearer against the stored session
// token. Denials are silent redirects to the login view; no plan-check
// detail leaks to the response.
func RequirePaidPlan(factory *plancache.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		guard := factory.GuardFor(username)

		state := guard.Check(c.Request.Context())
		metrics.GuardDecisions.WithLabelValues(state.String()).Inc()
		switch state {
		case plancache.StateAuthorized:
			c.Next()
		case plancache.StateDenied:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"redirect": "/login"})
		default:
			// Request context died mid-check; the verdict was discarded.
			c.AbortWithStatus(http.StatusRequestTimeout)
		}
	}
}
