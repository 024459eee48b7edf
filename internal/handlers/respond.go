package handlers

import (
	"errors"
	"net/http"

	"shopcore-be/internal/auth"
	"shopcore-be/internal/cart"
	"shopcore-be/internal/logger"
	"shopcore-be/internal/order"
	"shopcore-be/internal/payment"
	"shopcore-be/internal/product"
	"shopcore-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps domain errors onto the HTTP status taxonomy. Anything
// unrecognized is an infrastructure failure and surfaces as a generic 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()

	case errors.Is(err, auth.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()

	case errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, payment.ErrOrderNotFound),
		errors.Is(err, payment.ErrPaymentNotFound),
		errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, payment.ErrDuplicatePayment),
		errors.Is(err, user.ErrEmailExists):
		status = http.StatusConflict
		message = err.Error()

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPayStatus),
		errors.Is(err, order.ErrInvalidPayMethod),
		errors.Is(err, order.ErrNothingToUpdate),
		errors.Is(err, payment.ErrInvalidStatus),
		errors.Is(err, user.ErrShopRequired),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, product.ErrShopRequired):
		status = http.StatusBadRequest
		message = err.Error()

	default:
		logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

// currentPrincipal pulls the authenticated principal from the request
// context; the zero value means the request is anonymous.
func currentPrincipal(c *gin.Context) (auth.Principal, bool) {
	return auth.PrincipalFrom(c.Request.Context())
}

func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "unauthorized",
		})
		return auth.Principal{}, false
	}
	return p, true
}
