package client

import (
	"context"

	"xianyu_admin_v1_202509/internal/model"
)

// ==================== 认证接口 ====================

// LoginCredentials 登录表单
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

// LoginResult 登录成功应答
type LoginResult struct {
	Token     string         `json:"token"`
	User      model.UserView `json:"user"`
	ExpiresIn int64          `json:"expiresIn"`
}

// Login 登录
func (c *Client) Login(ctx context.Context, credentials LoginCredentials) (*LoginResult, error) {
	resp, err := c.Post(ctx, "/api/auth/login", credentials)
	if err != nil {
		return nil, err
	}
	var result LoginResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout 退出登录
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, "/api/auth/logout", nil)
	return err
}

// CurrentUser 获取当前登录用户
func (c *Client) CurrentUser(ctx context.Context) (*model.UserView, error) {
	resp, err := c.Get(ctx, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var user model.UserView
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateToken 校验当前持有的 token 是否仍然有效
// 401 会照常走强制下线流程，调用方只需要关心返回值
func (c *Client) ValidateToken(ctx context.Context) bool {
	resp, err := c.Get(ctx, "/api/auth/validate", nil)
	if err != nil {
		return false
	}
	var result struct {
		Valid bool `json:"valid"`
	}
	if err := resp.Decode(&result); err != nil {
		return false
	}
	return result.Valid
}

// RefreshToken 刷新会话 token
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	resp, err := c.Post(ctx, "/api/auth/refresh", nil)
	if err != nil {
		return "", err
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := resp.Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// ChangePassword 修改密码
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := c.Post(ctx, "/api/auth/change-password", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	return err
}
