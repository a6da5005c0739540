package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listProducts returns the active catalog for authenticated shoppers
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.store.GetActiveProducts(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// getProduct returns one catalog item
func (h *Handler) getProduct(c *gin.Context) {
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
