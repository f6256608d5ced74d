package api

import (
	"net/http"
	"strings"

	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

const userIDKey = "currentUserID"

// AuthRequired resolves the current user from the Authorization header and
// aborts with 401 when the token is missing, unknown, or expired
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			// Header missing or not a bearer token
			token = ""
		}

		userID, err := auth.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the user id set by AuthRequired
func currentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
