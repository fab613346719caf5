package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// 外部传入的 Request-ID 长度上限，超长的视同缺失
const requestIDMaxLen = 64

// RequestID 为每个请求注入追踪 ID。
// 优先沿用调用方携带的 X-Request-ID，缺失时生成 UUID，
// 同时写入 gin.Context 与响应头，供日志串联一次请求
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
