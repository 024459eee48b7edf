package handlers

import (
	"net/http"

	"shopcore-be/internal/cart"
	"shopcore-be/internal/middleware"
	"shopcore-be/internal/order"
	"shopcore-be/internal/payment"
	"shopcore-be/internal/product"
	"shopcore-be/internal/report"
	"shopcore-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	users    user.Service
	products product.Service
	carts    cart.Service
	orders   order.Service
	payments payment.Service
	reports  report.Service
}

func New(
	users user.Service,
	products product.Service,
	carts cart.Service,
	orders order.Service,
	payments payment.Service,
	reports report.Service,
) *Handler {
	return &Handler{
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
		payments: payments,
		reports:  reports,
	}
}

// registerValidators wires the enum checks into gin's binding engine so
// malformed enums fail at bind time.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return order.ValidPaymentMethod(order.PaymentMethod(fl.Field().String()))
	})
	_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return order.ValidOrderStatus(order.OrderStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("paymentstatus", func(fl validator.FieldLevel) bool {
		return payment.ValidStatus(payment.Status(fl.Field().String()))
	})
}

func NewRouter(h *Handler) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.AuthMiddleware(),
		middleware.RateLimitMiddleware(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.Me)
	}

	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
	}

	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.POST("/add", h.AddToCart)
		cartGroup.PUT("/update", h.UpdateCartItem)
		cartGroup.DELETE("/remove/:productId", h.RemoveCartItem)
		cartGroup.DELETE("/clear", h.ClearCart)
	}

	orders := r.Group("/orders")
	{
		orders.POST("/place", h.PlaceOrder)
		orders.GET("/my-orders", h.GetMyOrders)
		orders.GET("/:id", h.GetMyOrder)
		orders.PUT("/cancel/:id", h.CancelOrder)
	}

	payments := r.Group("/payments")
	{
		payments.POST("", h.CreatePayment)
		payments.GET("", h.GetMyPayments)
		payments.GET("/:id", h.GetMyPayment)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/orders", h.AdminListOrders)
		admin.GET("/orders/:id", h.AdminGetOrder)
		admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.DELETE("/orders/:id", h.AdminDeleteOrder)
		admin.PUT("/payments/:id/status", h.AdminUpdatePaymentStatus)
		admin.GET("/reports/sales", h.AdminSalesReport)
		admin.POST("/users/admins", h.AdminCreateAdmin)
	}

	return r
}
