package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Samyakjain08/AeroJobs/internal/shared/auth"
	"github.com/Samyakjain08/AeroJobs/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userRoleKey  = "userRole"

	// SessionCookie is the cookie holding the signed session token.
	SessionCookie = "token"
)

var publicPathPrefixes = []string{
	"/api/v1/users/register",
	"/api/v1/users/login",
	"/api/v1/health",
	"/api/v1/files/",
}

// Auth validates the session cookie (or a Bearer token) and stores identity in context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range publicPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token := ""
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			token = strings.TrimSpace(cookie)
		}
		if token == "" {
			authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			}
		}
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired session", nil)
			return
		}

		c.Set(userIDKey, claims.Sub)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		if claims.Role != "" {
			c.Set(userRoleKey, claims.Role)
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user ID, or "" when absent.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
