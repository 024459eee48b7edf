package handlers

import (
	"net/http"

	"shopcore-be/internal/order"
	"shopcore-be/internal/payment"

	"github.com/gin-gonic/gin"
)

type createPaymentRequest struct {
	OrderID        string  `json:"orderId" binding:"required"`
	PaymentMethod  string  `json:"paymentMethod" binding:"required,paymentmethod"`
	PaymentGateway *string `json:"paymentGateway"`
	TransactionID  *string `json:"transactionId"`
}

type updatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,paymentstatus"`
}

func (h *Handler) CreatePayment(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	created, instructions, err := h.payments.CreatePayment(c.Request.Context(), payment.CreatePaymentParams{
		UserID:         p.ID,
		OrderID:        req.OrderID,
		PaymentMethod:  order.PaymentMethod(req.PaymentMethod),
		PaymentGateway: req.PaymentGateway,
		TransactionID:  req.TransactionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"payment":      created,
		"instructions": instructions,
	})
}

func (h *Handler) GetMyPayments(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	payments, err := h.payments.GetMyPayments(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}

func (h *Handler) GetMyPayment(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	pay, err := h.payments.GetMyPayment(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": pay,
	})
}

func (h *Handler) AdminUpdatePaymentStatus(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.payments.UpdatePaymentStatus(c.Request.Context(), p, c.Param("id"), payment.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "payment status updated",
		"payment": updated,
	})
}
