package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一应答信封：{ success, data, message?, code? }
// 业务失败时 HTTP 状态码保持 200，错误通过信封表达

// OK 成功应答
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// OKMessage 成功应答（附带提示语）
func OKMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// Fail 业务失败应答
func Fail(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"message": message,
		"code":    code,
	})
}

// FailStatus 带 HTTP 状态码的失败应答
func FailStatus(c *gin.Context, status, code int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"code":    code,
	})
}
