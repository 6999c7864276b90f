package utils

import "github.com/gin-gonic/gin"

// Owner is the state-ownership key for the request: the authenticated
// user's id, or the guest session id, or "anonymous" when the client sent
// neither.
func Owner(c *gin.Context) string {
	if v, ok := c.Get("owner"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anonymous"
}

func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get("userId"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
