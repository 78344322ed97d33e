package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flipvault-web/apperrors"
	"flipvault-web/models"
	"flipvault-web/storage"
)

// GetProducts relays the catalog list. Prices are converted to the
// session's display currency when one is set.
func (h *Handler) GetProducts(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	products, err := h.backend.GetProducts(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("failed to fetch products", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog is temporarily unavailable"})
		return
	}

	h.convertPrices(c, products)
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.backend.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.IsNetworkFailure(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog is temporarily unavailable"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	single := []models.Product{*product}
	h.convertPrices(c, single)
	c.JSON(http.StatusOK, single[0])
}

func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query cannot be empty"})
		return
	}

	products, err := h.backend.SearchProducts(c.Request.Context(), query)
	if err != nil {
		h.log.Error("search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "search is temporarily unavailable"})
		return
	}

	h.convertPrices(c, products)
	c.JSON(http.StatusOK, products)
}

// convertPrices rewrites USD prices into the session currency. Conversion
// is presentation only; failures leave the USD values untouched.
func (h *Handler) convertPrices(c *gin.Context, products []models.Product) {
	username := c.GetString("username")
	if username == "" {
		return
	}
	store := h.plans.SessionStore(username)
	currency, err := store.Get(c.Request.Context(), storage.KeyCurrency)
	if err != nil || currency == models.CurrencyUSD {
		return
	}
	for i := range products {
		if v, err := models.ConvertPrice(products[i].AverageEbayPrice, currency); err == nil {
			products[i].AverageEbayPrice = v
		}
		if v, err := models.ConvertPrice(products[i].EbaySaleAmount, currency); err == nil {
			products[i].EbaySaleAmount = v
		}
	}
}

// --- admin catalog operations ---

type ProductInput struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url" binding:"required"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and image_url are required"})
		return
	}

	product, err := h.backend.CreateProduct(c.Request.Context(), input.Name, input.ImageURL)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.backend.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) ScrapeProducts(c *gin.Context) {
	msg, err := h.backend.ScrapeProducts(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *Handler) ScrapeProduct(c *gin.Context) {
	msg, err := h.backend.ScrapeProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// statusFor maps the error taxonomy to HTTP statuses for admin-facing
// responses, which do surface the reason.
func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeValidationFailure:
		return http.StatusBadRequest
	case apperrors.CodeAuthFailure:
		return http.StatusUnauthorized
	case apperrors.CodeNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
