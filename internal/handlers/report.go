package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AdminSalesReport(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	topN, _ := strconv.Atoi(c.DefaultQuery("top", "5"))

	rep, err := h.reports.SalesReport(c.Request.Context(), p, topN)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rep,
	})
}
