package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type updateCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (h *Handler) GetCart(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	cartData, err := h.carts.GetCart(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cartData,
	})
}

func (h *Handler) AddToCart(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	cartData, err := h.carts.AddItem(c.Request.Context(), p.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "product added to cart",
		"cart":    cartData,
	})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	cartData, err := h.carts.UpdateItem(c.Request.Context(), p.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "cart item updated",
		"cart":    cartData,
	})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	cartData, err := h.carts.RemoveItem(c.Request.Context(), p.ID, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "cart item removed",
		"cart":    cartData,
	})
}

func (h *Handler) ClearCart(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.carts.Clear(c.Request.Context(), p.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "cart cleared",
	})
}
