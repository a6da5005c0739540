package api

import (
	"net/http"

	"support-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listOrders returns the caller's orders, newest first
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.store.GetOrdersByUserID(c.Request.Context(), currentUser(c).ID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// getOrder returns one of the caller's orders; anyone else's order is a 404
func (h *Handler) getOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.store.GetOrderForUser(c.Request.Context(), id, currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// createOrder places an order for the caller
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := currentUser(c)
	order, err := h.orders.CreateOrder(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.logger.Warn("Order creation failed", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to create order",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, order)
}
