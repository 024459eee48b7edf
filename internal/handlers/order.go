package handlers

import (
	"net/http"
	"strconv"

	"shopcore-be/internal/order"

	"github.com/gin-gonic/gin"
)

type shippingAddressRequest struct {
	Line1      string  `json:"line1" binding:"required"`
	Line2      *string `json:"line2"`
	City       string  `json:"city" binding:"required"`
	State      *string `json:"state"`
	PostalCode string  `json:"postalCode" binding:"required"`
	Country    string  `json:"country" binding:"required"`
}

type placeOrderRequest struct {
	ShippingAddress shippingAddressRequest `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required,paymentmethod"`
}

type updateOrderStatusRequest struct {
	OrderStatus   *string `json:"orderStatus" binding:"omitempty,orderstatus"`
	PaymentStatus *string `json:"paymentStatus" binding:"omitempty,oneof=pending paid failed"`
}

func (r shippingAddressRequest) toDomain() order.ShippingAddress {
	return order.ShippingAddress{
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	o, err := h.orders.PlaceOrder(
		c.Request.Context(),
		p.ID,
		req.ShippingAddress.toDomain(),
		order.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "order placed",
		"order":   o,
	})
}

func (h *Handler) GetMyOrders(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	orders, err := h.orders.GetMyOrders(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

func (h *Handler) GetMyOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	o, err := h.orders.GetMyOrder(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   o,
	})
}

func (h *Handler) CancelOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	o, err := h.orders.CancelOrder(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "order cancelled",
		"order":   o,
	})
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	orders, err := h.orders.ListAllOrders(c.Request.Context(), p, limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

func (h *Handler) AdminGetOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   o,
	})
}

func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	params := order.UpdateStatusParams{OrderID: c.Param("id")}
	if req.OrderStatus != nil {
		s := order.OrderStatus(*req.OrderStatus)
		params.OrderStatus = &s
	}
	if req.PaymentStatus != nil {
		s := order.PaymentStatus(*req.PaymentStatus)
		params.PaymentStatus = &s
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), p, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "order status updated",
		"order":   o,
	})
}

func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "order deleted",
	})
}
