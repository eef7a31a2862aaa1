package httpserver

import (
	"context"
	"net/http"
	"strings"

	"mrhook/internal/domain"
	"github.com/gin-gonic/gin"
)

type ctxKey string

const userCtxKey ctxKey = "mrhook/user"

// authMiddleware resolves a Bearer access token to a user and stores it on
// the request context. Requests without a valid token are rejected.
func authMiddleware(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), userCtxKey, u)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	u, ok := c.Request.Context().Value(userCtxKey).(*domain.User)
	return u, ok
}
