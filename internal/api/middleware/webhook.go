package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/response"
)

// WebhookToken Webhook 共享令牌校验中间件
// 校验请求头 X-Webhook-Token，expectedToken 为空串时不做校验（开放摄入）
func WebhookToken(expectedToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedToken == "" {
			c.Next()
			return
		}

		got := c.GetHeader("X-Webhook-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(expectedToken)) != 1 {
			response.Unauthorized(c, 10002, "Webhook Token 无效")
			c.Abort()
			return
		}

		c.Next()
	}
}
