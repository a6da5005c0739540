package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"support-service/internal/auth"
	"support-service/internal/broker"
	"support-service/internal/redisclient"
	"support-service/internal/service"
	"support-service/internal/store"
	"support-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	store     *store.Store
	cache     *redisclient.Client
	tokens    *auth.TokenManager
	chat      *service.ChatService
	assistant *service.ProductAssistant
	orders    *service.OrderService
	admin     *service.AdminService
	events    *broker.EventPublisher
	adminKey  string
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	store *store.Store,
	cache *redisclient.Client,
	tokens *auth.TokenManager,
	chat *service.ChatService,
	assistant *service.ProductAssistant,
	orders *service.OrderService,
	admin *service.AdminService,
	events *broker.EventPublisher,
	adminKey string,
) *Handler {
	return &Handler{
		store:     store,
		cache:     cache,
		tokens:    tokens,
		chat:      chat,
		assistant: assistant,
		orders:    orders,
		admin:     admin,
		events:    events,
		adminKey:  adminKey,
		logger:    util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/register/admin", h.registerAdmin)
		authGroup.POST("/login", h.login)
		authGroup.POST("/admin/login", h.adminLogin)
		authGroup.POST("/logout", h.logout)

		authed := authGroup.Group("", h.requireAuth())
		authed.GET("/user", h.currentUserInfo)
		authed.GET("/verify", h.currentUserInfo)
	}

	api := router.Group("/api", h.requireAuth())
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)

		api.GET("/orders", h.listOrders)
		api.POST("/orders", h.createOrder)
		api.GET("/orders/:id", h.getOrder)

		api.POST("/chat", h.sendMessage)
		api.GET("/chat", h.getMessages)

		api.POST("/product-ai/ask", h.askProductAssistant)
	}

	admin := router.Group("/api/admin", h.requireAuth(), h.requireAdmin())
	{
		admin.GET("/products", h.adminListProducts)
		admin.POST("/products", h.adminCreateProduct)
		admin.GET("/products/:id", h.adminGetProduct)
		admin.PUT("/products/:id", h.adminUpdateProduct)
		admin.DELETE("/products/:id", h.adminDeleteProduct)

		admin.GET("/orders", h.adminListOrders)
		admin.GET("/orders/:id", h.adminGetOrder)
		admin.PUT("/orders/:id", h.adminUpdateOrderStatus)

		admin.GET("/users", h.adminListUsers)
		admin.GET("/users/:id", h.adminGetUser)
		admin.PUT("/users/:id", h.adminUpdateUser)
		admin.DELETE("/users/:id", h.adminDeleteUser)

		admin.GET("/chats", h.adminListChats)
		admin.GET("/chats/:id", h.adminGetChat)
		admin.DELETE("/chats/:id", h.adminDeleteChat)

		admin.GET("/stats", h.adminStats)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck verifies the database and cache connections
func (h *Handler) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database unreachable",
		})
		return
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  "cache unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
