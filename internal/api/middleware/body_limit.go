package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tjmanoj/gce-placify/pkg/response"
)

// BodyLimit 限制单个请求体的最大字节数。
// 全站最大的请求体是花名册 Excel 上传，上限在路由层给定
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		// MaxBytesReader 触发的读取错误在这里统一映射为 413
		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
