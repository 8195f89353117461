package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"xianyu_admin_v1_202509/internal/middleware"
	"xianyu_admin_v1_202509/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login 账号密码登录
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "用户名和密码不能为空")
		return
	}

	result, err := ctrl.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Fail(c, 400, err.Error())
			return
		}
		Fail(c, 500, "登录失败: "+err.Error())
		return
	}

	OKMessage(c, result, "登录成功")
}

// Logout 退出登录
// POST /api/auth/logout
// Token 是无状态的，服务端只做应答，清理动作在客户端完成
func (ctrl *AuthController) Logout(c *gin.Context) {
	OKMessage(c, nil, "已退出登录")
}

// Me 当前登录用户
// GET /api/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := ctrl.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		FailStatus(c, http.StatusUnauthorized, 401, "登录态已失效")
		return
	}
	OK(c, user)
}

// Validate 校验当前 Token 是否有效
// 能走到这里说明中间件已放行，直接返回载荷里的身份
// GET /api/auth/validate
func (ctrl *AuthController) Validate(c *gin.Context) {
	OK(c, gin.H{
		"valid":    true,
		"userId":   middleware.GetUserID(c),
		"username": middleware.GetUsername(c),
	})
}

// Refresh 续签 Token
// POST /api/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	userID := middleware.GetUserID(c)
	token, err := ctrl.authService.RefreshToken(c.Request.Context(), userID)
	if err != nil {
		FailStatus(c, http.StatusUnauthorized, 401, "续签失败，请重新登录")
		return
	}
	OK(c, gin.H{"token": token})
}

// ChangePassword 修改密码
// POST /api/auth/change-password
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "请填写原密码和新密码")
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, nil, "密码修改成功")
}
