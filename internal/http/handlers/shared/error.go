package shared

import (
	"github.com/vendorhub/payout/internal/http/response"
	"github.com/vendorhub/payout/internal/i18n"
	"github.com/vendorhub/payout/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondAppError 输出错误响应；5xx 记录 error 日志，其余带原始错误时记录 warn
func RespondAppError(c *gin.Context, appErr *response.AppError) {
	if appErr == nil {
		return
	}
	if appErr.Err != nil {
		log := RequestLog(c)
		if appErr.Internal() {
			log.Errorw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		} else {
			log.Warnw("handler_rejected", "code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		}
	}
	if appErr.Data != nil {
		response.ErrorWithData(c, appErr.Code, appErr.Message, gin.H(appErr.Data))
		return
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondError 按消息键返回国际化错误
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	RespondAppError(c, response.WrapError(code, msg, err))
}

// RespondErrorWithMsg 返回自定义消息错误
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	RespondAppError(c, response.WrapError(code, msg, err))
}

// RespondErrorWithData 返回带业务数据的错误（如冲突时的当前状态）
func RespondErrorWithData(c *gin.Context, code int, msg string, data gin.H, err error) {
	RespondAppError(c, response.WrapError(code, msg, err).WithData(data))
}
