package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/cinestream/internal/service"
	"github.com/user/cinestream/internal/utils"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
)

// Authenticator 校验访问令牌
type Authenticator interface {
	Authenticate(ctx context.Context, access string) (*service.Claims, error)
}

// RequireAuth 必须登录中间件
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.Unauthorized(c, "Authentication credentials were not provided.")
			c.Abort()
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.Unauthorized(c, "Given token not valid for any token type")
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// bearerToken 从 Authorization Header 中提取令牌
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxUserID); exists {
		return userID.(uint)
	}
	return 0
}
