package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/wisepick/internal/apperr"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Error     string `json:"error"`      // 错误类型
	Message   string `json:"message"`    // 消息
	RequestID string `json:"request_id"` // 请求追踪标识
}

// Success 返回成功响应，正文即业务数据本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 返回错误响应
func Error(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:     errType,
		Message:   message,
		RequestID: c.GetString("request_id"),
	})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "InvalidQueryError", message)
}

// HandleError 按错误类别映射 HTTP 状态码
// 未分类错误返回通用 500 正文，内部细节只进日志不出接口
func HandleError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidQuery:
		Error(c, http.StatusBadRequest, "InvalidQueryError", err.Error())
	case apperr.KindRateLimited:
		Error(c, http.StatusTooManyRequests, "RateLimitExceededError", err.Error())
	case apperr.KindExternalAPI:
		Error(c, http.StatusServiceUnavailable, "ExternalAPIError", err.Error())
	case apperr.KindNotFound:
		Error(c, http.StatusNotFound, "NotFoundError", err.Error())
	default:
		log.Printf("[API] 未处理异常: %v", err)
		Error(c, http.StatusInternalServerError, "InternalServerError",
			"An unexpected error occurred. Please try again later.")
	}
}
