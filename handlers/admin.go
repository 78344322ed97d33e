package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flipvault-web/apperrors"
	"flipvault-web/models"
	"flipvault-web/storage"
)

// GetAllUsers returns the roster for the admin panel. When the user
// service omits a plan, the admin's shadow record for that user fills the
// gap, defaulting to Free.
func (h *Handler) GetAllUsers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.backend.GetUsers(ctx)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	store := h.plans.SessionStore(c.GetString("username"))
	for i := range users {
		if users[i].Plan != "" {
			continue
		}
		users[i].Plan = string(models.PlanFree)
		raw, err := store.Get(ctx, storage.ShadowPlanKey(strconv.Itoa(users[i].ID)))
		if err != nil {
			continue
		}
		var rec models.PlanRecord
		if err := json.Unmarshal([]byte(raw), &rec); err == nil && rec.PlanName != "" {
			users[i].Plan = rec.PlanName
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.backend.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type PlanUpdateInput struct {
	Plan string `json:"plan" binding:"required"`
}

// UpdateUserPlan changes a user's plan through the plan cache so the
// closed-set validation and the self-update refresh rules apply in one
// place. Admin-facing failures carry the reason.
func (h *Handler) UpdateUserPlan(c *gin.Context) {
	var input PlanUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan is required"})
		return
	}

	userID := c.Param("id")
	cache := h.plans.ForSession(c.GetString("username"))
	if err := cache.SetEntitlementFromAdmin(c.Request.Context(), userID, input.Plan); err != nil {
		if apperrors.IsValidationFailure(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("plan update failed",
			zap.String("user_id", userID), zap.String("plan", input.Plan), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "plan updated", "user_id": userID, "plan": input.Plan})
}
