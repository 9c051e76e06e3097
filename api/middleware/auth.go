package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"trailangels/services"
)

// TokenAuthMiddleware resolves "Authorization: Bearer <token>" against the
// user_tokens table and stores the account on the context.
func TokenAuthMiddleware(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := accounts.UserByToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}
		c.Set("user_id", user.ID)
		c.Set("handle", user.Handle)
		c.Set("nickname", user.Nickname)
		c.Next()
	}
}

// TestAuthMiddleware is the test-only variant: X-User-ID header or a
// "test_token_N" bearer token, no database lookup.
func TestAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDHeader := c.GetHeader("X-User-ID")
		if userIDHeader != "" {
			userID, err := strconv.ParseInt(userIDHeader, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid X-User-ID format"})
				c.Abort()
				return
			}
			setTestUser(c, userID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if strings.HasPrefix(token, "test_token_") {
				userID, err := strconv.ParseInt(strings.TrimPrefix(token, "test_token_"), 10, 64)
				if err != nil {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid test token format"})
					c.Abort()
					return
				}
				setTestUser(c, userID)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required: provide X-User-ID header or Authorization Bearer token"})
		c.Abort()
	}
}

func setTestUser(c *gin.Context, userID int64) {
	c.Set("user_id", userID)
	c.Set("handle", fmt.Sprintf("user-test%d", userID))
	c.Set("nickname", fmt.Sprintf("test%d", userID))
}
