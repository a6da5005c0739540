package api

import (
	"net/http"
	"strings"
	"time"

	"support-service/internal/auth"
	"support-service/internal/models"
	"support-service/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type adminRegisterRequest struct {
	registerRequest
	AdminKey string `json:"admin_key"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// register creates a regular account
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.createAccount(c, req, models.RoleUser)
}

// registerAdmin creates an admin account, gated by the registration key
func (h *Handler) registerAdmin(c *gin.Context) {
	var req adminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if h.adminKey == "" || req.AdminKey != h.adminKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin key"})
		return
	}

	h.createAccount(c, req.registerRequest, models.RoleAdmin)
}

func (h *Handler) createAccount(c *gin.Context, req registerRequest, role models.Role) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("Registration failed", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.logger.Info("Account registered", zap.String("email", email), zap.String("role", string(role)))
	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// login authenticates a regular account
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		util.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		util.LoginAttemptsTotal.WithLabelValues("inactive").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": "Account deactivated"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	util.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// adminLogin authenticates an admin account. Failures are uniformly 401
// so probing cannot distinguish a missing account from a role mismatch.
func (h *Handler) adminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if user == nil || user.Role != models.RoleAdmin || !auth.CheckPassword(user.PasswordHash, req.Password) {
		util.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	util.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// logout denylists the presented token until its natural expiry. A
// missing or unparseable token still yields 200; there is nothing to
// revoke.
func (h *Handler) logout(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString != "" && h.cache != nil {
		if claims, err := h.tokens.Verify(tokenString); err == nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.cache.DenyToken(c.Request.Context(), tokenString, ttl); err != nil {
				h.logger.Warn("Failed to denylist token", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// currentUserInfo returns the authenticated account
func (h *Handler) currentUserInfo(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
