package admin

import (
	"strconv"

	"github.com/nextcart/nextcart/internal/http/response"
	"github.com/nextcart/nextcart/internal/logger"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil && code >= response.CodeInternal {
		logger.Errorw("admin_request_failed",
			"path", c.FullPath(),
			"method", c.Request.Method,
			"code", code,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
