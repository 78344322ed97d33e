package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flipvault-web/models"
	"flipvault-web/storage"
)

// GetSettings returns the session's display preferences.
func (h *Handler) GetSettings(c *gin.Context) {
	username := c.GetString("username")
	store := h.plans.SessionStore(username)

	currency, err := store.Get(c.Request.Context(), storage.KeyCurrency)
	if err != nil {
		currency = models.CurrencyUSD
	}

	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"currency": currency,
	})
}

type SettingsInput struct {
	Currency string `json:"currency" binding:"required"`
}

// UpdateSettings stores the display currency. Only USD, EUR and AUD are
// offered; anything else is rejected.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var input SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency is required"})
		return
	}
	if !models.ValidCurrency(input.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be one of USD, EUR, AUD"})
		return
	}

	username := c.GetString("username")
	store := h.plans.SessionStore(username)
	if err := store.Set(c.Request.Context(), storage.KeyCurrency, input.Currency); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "settings saved", "currency": input.Currency})
}
