package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/checkproof/inventory/pkg/jwt"
	"github.com/checkproof/inventory/pkg/response"
)

// 调用方标识在gin Context中的Key
const contextKeyClient = "client"

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token(格式:Authorization: Bearer <token>)
// 2. 验证Token有效性
// 3. 将调用方标识注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// RequireAuth 要求携带有效Token
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.GET("/items", handler.ListItems)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, 40100, "请先获取访问凭证")
			c.Abort()
			return
		}

		// 2. 解析Token格式
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, 40101, "Token格式错误")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 将调用方标识注入Context(后续Handler和日志可以使用)
		c.Set(contextKeyClient, claims.Client)

		c.Next()
	}
}

// GetClient 从Context获取调用方标识(未认证返回空串)
func GetClient(c *gin.Context) string {
	if v, ok := c.Get(contextKeyClient); ok {
		if client, ok := v.(string); ok {
			return client
		}
	}
	return ""
}
