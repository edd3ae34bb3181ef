package middleware

import (
	"github.com/haierkeys/storyboard-studio-service/pkg/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthToken 用户 Token 认证中间件（使用注入的 Token 管理器）
func UserAuthToken(tokens app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		response := app.NewResponse(c)

		if s, exist := c.GetQuery("authorization"); exist {
			token = s
		} else if s := c.GetHeader("Authorization"); len(s) != 0 {
			token = s
		} else if s, exist := c.GetQuery("token"); exist {
			token = s
		} else if s := c.GetHeader("Token"); len(s) != 0 {
			token = s
		}

		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := tokens.Parse(token)
		if err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Set("user_token", user)
		c.Set("uid", user.UID)

		c.Next()
	}
}
