package middleware

import (
	"github.com/haierkeys/storyboard-studio-service/pkg/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 404 handler
// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotMatchedRouter)
		c.Abort()
	}
}
