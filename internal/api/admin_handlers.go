package api

import (
	"net/http"

	"support-service/internal/broker"
	"support-service/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type productRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Price       float64              `json:"price" binding:"min=0"`
	Stock       int                  `json:"stock" binding:"min=0"`
	Category    string               `json:"category" binding:"required"`
	IsActive    *bool                `json:"is_active"`
	Images      models.ProductImages `json:"images"`
}

// adminListProducts returns the whole catalog including inactive items
func (h *Handler) adminListProducts(c *gin.Context) {
	products, err := h.store.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// adminCreateProduct adds a catalog item owned by the calling admin
func (h *Handler) adminCreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		IsActive:    active,
		Images:      req.Images,
		CreatedBy:   currentUser(c).ID,
	}
	if err := h.store.CreateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.invalidateProductSample(c)
	c.JSON(http.StatusCreated, product)
}

// adminGetProduct returns one catalog item
func (h *Handler) adminGetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.store.GetProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// adminUpdateProduct overwrites a catalog item
func (h *Handler) adminUpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		IsActive:    active,
		Images:      req.Images,
	}
	if err := h.store.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	h.invalidateProductSample(c)
	c.JSON(http.StatusOK, product)
}

// adminDeleteProduct removes a catalog item
func (h *Handler) adminDeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	h.invalidateProductSample(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// adminListOrders returns all orders with owners joined and lines shown
// at the current catalog price.
func (h *Handler) adminListOrders(c *gin.Context) {
	orders, err := h.admin.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// adminGetOrder returns one order in the admin view
func (h *Handler) adminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.admin.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// adminUpdateOrderStatus overwrites an order's status. Any known status
// is accepted; forward-only flow is enforced by the dashboard UI, not here.
func (h *Handler) adminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validOrderStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// adminListUsers returns all accounts, newest first
func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.store.GetUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// adminGetUser returns one account
func (h *Handler) adminGetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// adminUpdateUser flips an account's active flag. Role and password are
// not mutable through this endpoint.
func (h *Handler) adminUpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if id == currentUser(c).ID && !*req.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot deactivate your own account"})
		return
	}

	user, err := h.store.SetUserActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// adminDeleteUser removes an account and cascades to its transcript
func (h *Handler) adminDeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if id == currentUser(c).ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	user, err := h.store.DeleteUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if h.events != nil {
		event := &models.UserDeletedEvent{
			BaseEvent: broker.NewBaseEvent(models.EventTypeUserDeleted),
			UserID:    id,
		}
		if err := h.events.PublishUserDeleted(c.Request.Context(), event); err != nil {
			h.logger.Error("Failed to publish UserDeleted event", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "User and associated data deleted successfully",
		"deleted_user": user,
	})
}

// adminListChats returns all transcripts, most recently updated first
func (h *Handler) adminListChats(c *gin.Context) {
	chats, err := h.store.GetChats(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chats)
}

// adminGetChat returns one transcript with its messages
func (h *Handler) adminGetChat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	chat, messages, err := h.store.GetChatByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat, "messages": messages})
}

// adminDeleteChat removes one transcript
func (h *Handler) adminDeleteChat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.store.DeleteChat(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat deleted successfully"})
}

// adminStats returns the dashboard summary
func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) invalidateProductSample(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateProductSample(c.Request.Context()); err != nil {
		h.logger.Warn("Failed to invalidate product sample cache", zap.Error(err))
	}
}
