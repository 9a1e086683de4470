package shared

import (
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/response"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if c.Request != nil {
		if id := logger.RequestIDFromContext(c.Request.Context()); id != "" {
			return logger.FromContext(c.Request.Context())
		}
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		log := RequestLog(c)
		if appErr.Code >= response.CodeInternal {
			log.Errorw("handler_error",
				"code", appErr.Code,
				"message", appErr.Message,
				"error", err,
			)
		} else {
			log.Debugw("handler_rejected",
				"code", appErr.Code,
				"message", appErr.Message,
				"error", err,
			)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}
