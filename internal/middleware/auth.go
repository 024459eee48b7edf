package middleware

import (
	"shopcore-be/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is passive: a missing or invalid token leaves the
// request anonymous, and the capability check in the service layer
// rejects privileged calls. Only the token's validity is decided here.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		p := auth.Principal{
			ID:     claims.UserID,
			Email:  claims.Email,
			Role:   auth.Role(claims.Role),
			ShopID: claims.ShopID,
		}

		ctx := auth.WithPrincipal(c.Request.Context(), p)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
