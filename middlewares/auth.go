package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/utils"
)

// Authenticate verifies the Authorization token and injects userId and
// userEmail into the request context for downstream handlers.
func Authenticate(c *gin.Context) {
	token := c.Request.Header.Get("Authorization")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	userId, email, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	c.Set("userId", userId)
	c.Set("userEmail", email)
	c.Next()
}
