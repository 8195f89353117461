package state

import (
	"context"
	"log"
	"sync"
	"time"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/notify"
	"xianyu_admin_v1_202509/pkg/cache"
	"xianyu_admin_v1_202509/pkg/storage"
)

// 统计卡片的缓存 TTL，轮询间隔内重复进入首页不再打接口
const statsCacheTTL = 30 * time.Second

const statsCacheKey = "dashboard:stats"

// GlobalStore 全局状态：登录态、统计卡片、通知、主题
type GlobalStore struct {
	client   *client.Client
	auth     *storage.AuthStorage
	theme    *storage.ThemeStorage
	notifier notify.Notifier
	cache    *cache.Cache

	guard loadingGuard

	mu            sync.Mutex
	user          *model.UserView
	authenticated bool
	stats         *model.SystemStats
	notifications []model.NotificationMessage
	unreadCount   int64
}

func NewGlobalStore(c *client.Client, auth *storage.AuthStorage, theme *storage.ThemeStorage, notifier notify.Notifier) *GlobalStore {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &GlobalStore{client: c, auth: auth, theme: theme, notifier: notifier, cache: cache.New()}
}

// ==================== 快照 ====================

func (s *GlobalStore) Loading() bool { return s.guard.isLoading() }

func (s *GlobalStore) User() *model.UserView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *GlobalStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *GlobalStore) Stats() *model.SystemStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *GlobalStore) Notifications() ([]model.NotificationMessage, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications, s.unreadCount
}

// ==================== 动作 ====================

// Login 登录并持久化会话
func (s *GlobalStore) Login(ctx context.Context, username, password string) bool {
	if !s.guard.begin() {
		return false
	}
	defer s.guard.end()

	result, err := s.client.Login(ctx, client.LoginCredentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		log.Printf("[Global] 登录失败: %v", err)
		return false
	}

	s.auth.SetToken(result.Token)
	s.auth.SetUserInfo(result.User)
	s.client.ResetLogoutGuard()

	s.mu.Lock()
	s.user = &result.User
	s.authenticated = true
	s.mu.Unlock()

	s.notifier.Notify(notify.LevelSuccess, "登录成功")
	return true
}

// Logout 退出登录。服务端调用失败也照常清理本地会话
func (s *GlobalStore) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		log.Printf("[Global] 服务端登出失败: %v", err)
	}

	s.ForceLogout()
	s.notifier.Notify(notify.LevelSuccess, "已退出登录")
}

// ForceLogout 清理本地会话（401 强制下线回调也走这里）
func (s *GlobalStore) ForceLogout() {
	s.auth.Clear()
	s.cache.Clear()

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

// FetchCurrentUser 恢复会话：有 token 则拉当前用户，无效则清理
func (s *GlobalStore) FetchCurrentUser(ctx context.Context) {
	if s.auth.Token() == "" {
		s.mu.Lock()
		s.authenticated = false
		s.mu.Unlock()
		return
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		log.Printf("[Global] 会话恢复失败: %v", err)
		s.ForceLogout()
		return
	}

	s.auth.SetUserInfo(*user)

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
}

// FetchStats 拉取首页统计，TTL 内命中缓存不打接口
func (s *GlobalStore) FetchStats(ctx context.Context) {
	if cached, ok := s.cache.Get(statsCacheKey); ok {
		if stats, ok := cached.(*model.SystemStats); ok {
			s.mu.Lock()
			s.stats = stats
			s.mu.Unlock()
			return
		}
	}

	stats, err := s.client.SystemStats(ctx)
	if err != nil {
		log.Printf("[Global] 统计拉取失败: %v", err)
		return
	}
	s.cache.Set(statsCacheKey, stats, statsCacheTTL)

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
}

// InvalidateStats 商品或同步状态变化后强制下一次 FetchStats 回源
func (s *GlobalStore) InvalidateStats() {
	s.cache.Remove(statsCacheKey)
}

// FetchNotifications 拉取系统通知
func (s *GlobalStore) FetchNotifications(ctx context.Context) {
	page, err := s.client.Notifications(ctx, 1, DefaultPageSize)
	if err != nil {
		log.Printf("[Global] 通知拉取失败: %v", err)
		return
	}

	s.mu.Lock()
	s.notifications = page.List
	s.unreadCount = page.UnreadCount
	s.mu.Unlock()
}

// MarkNotificationRead 标记已读后重新拉取
func (s *GlobalStore) MarkNotificationRead(ctx context.Context, id string) {
	if err := s.client.MarkNotificationRead(ctx, id); err != nil {
		return
	}
	s.FetchNotifications(ctx)
}

// ==================== 主题 ====================

func (s *GlobalStore) Theme() string {
	return s.theme.Theme()
}

func (s *GlobalStore) ToggleTheme() string {
	next := "dark"
	if s.theme.Theme() == "dark" {
		next = "light"
	}
	s.theme.SetTheme(next)
	return next
}

func (s *GlobalStore) SidebarCollapsed() bool {
	return s.theme.SidebarCollapsed()
}

func (s *GlobalStore) ToggleSidebar() bool {
	next := !s.theme.SidebarCollapsed()
	s.theme.SetSidebarCollapsed(next)
	return next
}
