package state

import (
	"context"
	"log"
	"sync"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/notify"
)

// SyncStore 同步页状态容器
type SyncStore struct {
	client   *client.Client
	notifier notify.Notifier

	guard loadingGuard

	mu       sync.Mutex
	status   *model.SyncRun
	history  []model.SyncRun
	logs     []model.SyncLog
	settings *model.AutoSyncSettings
}

func NewSyncStore(c *client.Client, notifier notify.Notifier) *SyncStore {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &SyncStore{client: c, notifier: notifier}
}

// ==================== 快照 ====================

func (s *SyncStore) Loading() bool { return s.guard.isLoading() }

func (s *SyncStore) Status() *model.SyncRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *SyncStore) History() []model.SyncRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SyncRun, len(s.history))
	copy(out, s.history)
	return out
}

func (s *SyncStore) Logs() []model.SyncLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SyncLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *SyncStore) AutoSyncSettings() *model.AutoSyncSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// ==================== 动作 ====================

// FetchStatus 拉取当前同步状态（轮询也走这里，失败只记日志不打扰用户）
func (s *SyncStore) FetchStatus(ctx context.Context) error {
	run, err := s.client.SyncStatus(ctx)
	if err != nil {
		log.Printf("[Sync] 状态拉取失败: %v", err)
		return err
	}

	s.mu.Lock()
	s.status = run
	s.mu.Unlock()
	return nil
}

// TriggerSync 手动触发同步；itemIDs 为空表示全量。
// 商品列表页「同步所选」也复用该动作（连通的就是 manual 端点）
func (s *SyncStore) TriggerSync(ctx context.Context, itemIDs []string) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	_, msg, err := s.client.TriggerManualSync(ctx, itemIDs)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "启动同步失败")
		return err
	}

	if msg == "" {
		msg = "同步任务已启动"
	}
	s.notifier.Notify(notify.LevelSuccess, msg)
	return s.FetchStatus(ctx)
}

// FetchAutoSyncSettings 拉取自动同步配置
func (s *SyncStore) FetchAutoSyncSettings(ctx context.Context) error {
	settings, err := s.client.AutoSyncSettings(ctx)
	if err != nil {
		log.Printf("[Sync] 自动同步配置拉取失败: %v", err)
		return err
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// UpdateAutoSyncSettings 更新自动同步配置并回读
func (s *SyncStore) UpdateAutoSyncSettings(ctx context.Context, enabled bool, intervalMinutes int) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	if err := s.client.UpdateAutoSyncSettings(ctx, enabled, intervalMinutes); err != nil {
		s.notifier.Notify(notify.LevelError, "更新自动同步设置失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "自动同步设置已更新")
	return s.FetchAutoSyncSettings(ctx)
}

// FetchHistory 拉取同步历史
func (s *SyncStore) FetchHistory(ctx context.Context, page, pageSize int) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	result, err := s.client.SyncHistory(ctx, page, pageSize)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取同步历史失败")
		return err
	}

	s.mu.Lock()
	s.history = result.List
	s.mu.Unlock()
	return nil
}

// FetchLogs 拉取指定任务的日志
func (s *SyncStore) FetchLogs(ctx context.Context, syncID, level string) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	logs, err := s.client.SyncLogs(ctx, syncID, level)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取同步日志失败")
		return err
	}

	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
	return nil
}

// CancelSync 取消运行中的任务
func (s *SyncStore) CancelSync(ctx context.Context, syncID string) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	if err := s.client.CancelSync(ctx, syncID); err != nil {
		s.notifier.Notify(notify.LevelError, "取消同步失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "同步任务已取消")
	return s.FetchStatus(ctx)
}

// RetrySync 重试失败任务（唯一的自动重试入口，且由用户显式触发）
func (s *SyncStore) RetrySync(ctx context.Context, syncID string) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	newID, err := s.client.RetrySync(ctx, syncID)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "重试同步失败")
		return err
	}

	log.Printf("[Sync] 重试产生新任务: %s", newID)
	s.notifier.Notify(notify.LevelSuccess, "同步任务已重新启动")
	return s.FetchStatus(ctx)
}

// TestConnection 连通性测试
func (s *SyncStore) TestConnection(ctx context.Context) (*model.ConnectionTestResult, error) {
	result, err := s.client.TestConnection(ctx)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "连接测试失败")
		return nil, err
	}
	return result, nil
}

// Reset 恢复初始状态
func (s *SyncStore) Reset() {
	s.mu.Lock()
	s.status = nil
	s.history = nil
	s.logs = nil
	s.settings = nil
	s.mu.Unlock()
}
