package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/middleware"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService 工厂方法
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// LoginResult 登录结果
type LoginResult struct {
	Token     string         `json:"token"`
	User      model.UserView `json:"user"`
	ExpiresIn int64          `json:"expiresIn"` // 秒
}

// Login 校验账号密码并签发 Token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if !user.IsActive {
		return nil, errors.New("账号已停用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("签发 Token 失败: %w", err)
	}

	return &LoginResult{
		Token:     token,
		User:      s.ToUserView(user),
		ExpiresIn: int64(middleware.GetJWTConfig().AccessTokenTTL.Seconds()),
	}, nil
}

// RefreshToken 为当前用户续签 Token
func (s *AuthService) RefreshToken(ctx context.Context, userID int64) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("查询用户失败: %w", err)
	}
	return middleware.GenerateAccessToken(user.ID, user.Username, user.Role)
}

// CurrentUser 返回登录态用户快照
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	view := s.ToUserView(user)
	return &view, nil
}

// ChangePassword 修改密码，旧密码校验失败则拒绝
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("原密码错误")
	}
	if len(newPassword) < 6 {
		return errors.New("新密码长度不能少于 6 位")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// EnsureAdmin 启动时保证默认管理员存在
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}

	admin := &model.SysUser{
		Username: username,
		Password: string(hashed),
		Role:     "super_admin",
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("创建默认管理员失败: %w", err)
	}
	log.Printf("[Auth] 默认管理员已创建: %s", username)
	return nil
}

// ToUserView 转换为客户端可见的用户快照
func (s *AuthService) ToUserView(user *model.SysUser) model.UserView {
	return model.UserView{
		ID:        strconv.FormatInt(user.ID, 10),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
