package middleware

import (
	"net/http"
	"strings"

	"studyon/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware validates the signed proximity session token
// and sets "sessionID" in the context. The position-fix stream only
// accepts fixes for the session the token was issued for.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-Session-Token")
		if header == "" {
			// Fall back to the Authorization header for clients that
			// send the session token there.
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				header = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing session token",
			})
			return
		}

		sessionID, err := utils.ValidateSessionToken(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session token",
			})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
