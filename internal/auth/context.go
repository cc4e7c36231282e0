package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID, or "" when the request did
// not pass AuthRequired.
func GetUserID(c *gin.Context) string {
	return stringFromContext(c, contextUserIDKey)
}

// GetUsername returns the authenticated user's username, or "".
func GetUsername(c *gin.Context) string {
	return stringFromContext(c, contextUsernameKey)
}

func stringFromContext(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
