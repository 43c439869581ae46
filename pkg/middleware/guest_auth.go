package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripdesk/pkg/utils"
)

// GuestAuthMiddleware guards the post-booking endpoints. The guest's JWT
// (minted when they first open the order with their access code) must
// name the order they are addressing.
func GuestAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateGuestToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if orderID := c.Param("id"); orderID != "" && claims.OrderID != orderID {
			utils.RespondError(c, http.StatusForbidden, "Token does not grant access to this order")
			c.Abort()
			return
		}

		c.Set("order_id", claims.OrderID)
		c.Next()
	}
}
