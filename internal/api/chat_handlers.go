package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type chatRequest struct {
	Message string `json:"message"`
}

// sendMessage runs one support exchange for the caller
func (h *Handler) sendMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	user := currentUser(c)
	turn, err := h.chat.SendMessage(c.Request.Context(), user.ID, req.Message)
	if err != nil {
		h.logger.Error("Chat turn failed", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error processing message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, turn)
}

// getMessages returns the caller's full transcript, empty before any chat
func (h *Handler) getMessages(c *gin.Context) {
	messages, err := h.chat.GetMessages(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// askProductAssistant answers a catalog-wide question, not persisted
func (h *Handler) askProductAssistant(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.assistant.Ask(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error processing product query",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
