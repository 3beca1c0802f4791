package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
	"github.com/xxxsen/remindme/internal/pkg/jwt"
	"github.com/xxxsen/remindme/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"
	TokenHeader      = "X-Auth-Token"
)

// JWTAuth rejects the request with 401 unless it carries a valid token, either
// in X-Auth-Token or as an Authorization bearer.
func JWTAuth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, appErr.ErrTokenRequired.Message())
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(TokenHeader)); token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
