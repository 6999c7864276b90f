package middlewares

import (
	"net/http"
	"strings"

	"storefront/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and puts the user identity
// on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized", "error": "missing or invalid token"})
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized", "error": "invalid token"})
			c.Abort()
			return
		}
		c.Set("userId", claims.UserID)
		c.Set("owner", claims.UserID)
		c.Next()
	}
}

// Identify resolves the state owner for the request without requiring
// login: a valid bearer token wins, then an X-Session-Id header for guest
// carts. Anything else falls through to the anonymous owner.
func Identify(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			if claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret); err == nil {
				c.Set("userId", claims.UserID)
				c.Set("owner", claims.UserID)
				c.Next()
				return
			}
		}
		if sid := c.GetHeader("X-Session-Id"); sid != "" {
			c.Set("owner", "guest:"+sid)
		}
		c.Next()
	}
}
