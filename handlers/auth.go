package handlers

import (
	"net/http"
	"strings"

	"firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
)

const uidContextKey = "uid"

// AuthRequired verifies the Firebase bearer token and stores the caller's uid
// in the request context. Identity itself lives with the external provider;
// this only consumes its verdict.
func AuthRequired(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(uidContextKey, decoded.UID)
		c.Next()
	}
}

// callerUID reads the uid stored by AuthRequired.
func callerUID(c *gin.Context) string {
	return c.GetString(uidContextKey)
}
