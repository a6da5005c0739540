package api

import (
	"net/http"
	"strings"

	"support-service/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userContextKey  = "current_user"
	tokenContextKey = "bearer_token"
)

// requireAuth authenticates the bearer token, rejects revoked tokens,
// and loads the account into the request context.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			return
		}

		if h.cache != nil {
			denied, err := h.cache.IsTokenDenied(c.Request.Context(), tokenString)
			if err != nil {
				h.logger.Warn("Token denylist check failed", zap.Error(err))
			} else if denied {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
				return
			}
		}

		claims, err := h.tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := h.store.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account deactivated"})
			return
		}

		c.Set(userContextKey, user)
		c.Set(tokenContextKey, tokenString)
		c.Next()
	}
}

// requireAdmin is the single role-authorization boundary; handlers behind
// it never re-derive the role.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated account set by requireAuth
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userContextKey).(*models.User)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}
