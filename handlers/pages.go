package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flipvault-web/storage"
)

// Landing returns the marketing payload for the landing page.
func (h *Handler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    h.cfg.App.Name,
		"tagline": "Product research and fee tooling for resellers",
		"links": gin.H{
			"pricing": "/pricing",
			"login":   "/login",
		},
	})
}

// Pricing returns the plan cards the pricing page renders.
func (h *Handler) Pricing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"plans": []gin.H{
			{
				"id":     "pro-lite",
				"name":   "Pro Lite",
				"price":  10,
				"period": "30 days",
				"features": []string{
					"200 product checks monthly",
					"Free vendors with every product check",
					"3 Discord product alerts a week",
				},
			},
			{
				"id":     "pro",
				"name":   "Pro",
				"price":  17,
				"period": "30 days",
				"features": []string{
					"500 product checks",
					"Free vendors with every product",
					"10 Discord alerts weekly",
				},
			},
			{
				"id":     "exclusive",
				"name":   "Exclusive",
				"price":  34,
				"period": "lifetime",
				"features": []string{
					"Unlimited product checks",
					"Free vendors with every product",
					"Unlimited Discord alerts",
				},
			},
		},
	})
}

// Dashboard returns the signed-in user's view: identity, last known plan
// and display currency.
func (h *Handler) Dashboard(c *gin.Context) {
	username := c.GetString("username")
	ctx := c.Request.Context()

	payload := gin.H{"username": username}

	cache := h.plans.ForSession(username)
	if rec, ok := cache.Record(ctx); ok {
		payload["plan"] = rec.PlanName
		payload["status"] = rec.Status
		payload["plan_updated_at"] = rec.UpdatedAt
	}

	store := h.plans.SessionStore(username)
	if currency, err := store.Get(ctx, storage.KeyCurrency); err == nil {
		payload["currency"] = currency
	}

	c.JSON(http.StatusOK, payload)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
