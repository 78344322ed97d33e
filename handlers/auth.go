package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flipvault-web/apperrors"
	"flipvault-web/storage"
	"flipvault-web/utils"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login forwards the credentials to the user service and, on success,
// mints a per-session bearer token and seeds the plan record from the
// response so the first guarded page needs no extra lookup.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ctx := c.Request.Context()
	res, err := h.backend.Login(ctx, input.Username, input.Password)
	if err != nil {
		if apperrors.IsAuthFailure(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.log.Error("login request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "login is temporarily unavailable"})
		return
	}
	if !res.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(h.cfg.Auth.JWTSecret, input.Username, false, h.cfg.Auth.TokenTTL)
	if err != nil {
		h.log.Error("failed to mint session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	store := h.plans.SessionStore(input.Username)
	if err := store.Set(ctx, storage.KeyUsername, input.Username); err != nil {
		h.log.Warn("failed to persist session identity", zap.Error(err))
	}
	if err := store.Set(ctx, storage.KeyToken, token); err != nil {
		h.log.Warn("failed to persist session token", zap.Error(err))
	}

	plan := res.Plan
	if plan == "" {
		plan = "Free"
	} else {
		h.plans.ForSession(input.Username).Seed(ctx, plan)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"plan":    plan,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters long"})
		return
	}

	if err := h.backend.Register(c.Request.Context(), input.Username, input.Password); err != nil {
		if apperrors.IsValidationFailure(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("register request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "registration is temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration successful"})
}

// AdminLogin issues a session token carrying the admin claim. Nothing
// about the admin credentials is kept on this tier.
func (h *Handler) AdminLogin(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ctx := c.Request.Context()
	ok, err := h.backend.AdminLogin(ctx, input.Username, input.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin credentials"})
		return
	}

	token, err := utils.GenerateToken(h.cfg.Auth.JWTSecret, input.Username, true, h.cfg.Auth.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	store := h.plans.SessionStore(input.Username)
	_ = store.Set(ctx, storage.KeyUsername, input.Username)
	_ = store.Set(ctx, storage.KeyToken, token)

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Logout clears every session and plan key; the bearer token stops working
// immediately because the guard matches it against the stored copy.
func (h *Handler) Logout(c *gin.Context) {
	username := c.GetString("username")
	ctx := c.Request.Context()
	store := h.plans.SessionStore(username)
	err := store.Delete(ctx,
		storage.KeyUsername, storage.KeyToken, storage.KeyPlanData, storage.KeyCurrency)
	if err != nil {
		h.log.Warn("failed to clear session keys", zap.String("username", username), zap.Error(err))
	}
	if err := store.DeletePrefix(ctx, storage.ShadowPlanPrefix); err != nil {
		h.log.Warn("failed to clear shadow plan records", zap.String("username", username), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out", "redirect": "/"})
}
