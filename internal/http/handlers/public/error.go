package public

import (
	"github.com/nextcart/nextcart/internal/http/response"
	"github.com/nextcart/nextcart/internal/logger"

	"github.com/gin-gonic/gin"
)

// respondError 统一错误响应，5xx 错误附带日志
func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil && code >= response.CodeInternal {
		logger.Errorw("request_failed",
			"path", c.FullPath(),
			"method", c.Request.Method,
			"code", code,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}
