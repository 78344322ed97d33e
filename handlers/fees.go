package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flipvault-web/feecalc"
)

type FeeInput struct {
	SalePrice   float64 `json:"sale_price" binding:"required"`
	Marketplace string  `json:"marketplace" binding:"required"`
}

// CalculateFee computes the seller fee for one marketplace.
func (h *Handler) CalculateFee(c *gin.Context) {
	var input FeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sale_price and marketplace are required"})
		return
	}

	fee, err := feecalc.Calculate(input.SalePrice, input.Marketplace)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee": fee})
}
