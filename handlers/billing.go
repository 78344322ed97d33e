package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flipvault-web/apperrors"
)

type CheckoutInput struct {
	Plan string `json:"plan" binding:"required"`
}

// CreateCheckoutSession asks the payment service for a checkout session
// the browser redirects into. A missing provider configuration surfaces as
// a generic failure and is never retried here.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan is required"})
		return
	}

	username := c.GetString("username")
	sessionID, err := h.backend.CreateCheckoutSession(c.Request.Context(), input.Plan, username)
	if err != nil {
		if apperrors.IsValidationFailure(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("checkout session failed", zap.String("plan", input.Plan), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "checkout is temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// CancelSubscription cancels via the payment service and drops the cached
// plan record so the next entitlement check reconciles.
func (h *Handler) CancelSubscription(c *gin.Context) {
	username := c.GetString("username")
	ctx := c.Request.Context()

	if err := h.backend.CancelSubscription(ctx); err != nil {
		h.log.Error("cancel subscription failed", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "cancellation failed, please try again"})
		return
	}

	if err := h.plans.ForSession(username).ClearPlanData(ctx); err != nil {
		h.log.Warn("failed to clear plan record after cancellation", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscription cancelled"})
}

// CheckSubscription reconciles the plan record against the subscription
// service on demand (used after returning from checkout).
func (h *Handler) CheckSubscription(c *gin.Context) {
	username := c.GetString("username")
	ctx := c.Request.Context()

	plan, err := h.backend.CheckSubscription(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "subscription status is unavailable"})
		return
	}

	h.plans.ForSession(username).Seed(ctx, plan)
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
