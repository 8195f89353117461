package state

import (
	"context"
	"sync"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/notify"
)

// DeliveryStore 自动发货页状态容器
type DeliveryStore struct {
	client   *client.Client
	notifier notify.Notifier

	guard loadingGuard

	mu      sync.Mutex
	configs []model.DeliveryConfig
	records []model.DeliveryRecord
	stats   *model.DeliveryStats
	filters client.DeliveryRecordFilter
}

func NewDeliveryStore(c *client.Client, notifier notify.Notifier) *DeliveryStore {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &DeliveryStore{client: c, notifier: notifier}
}

// ==================== 快照 ====================

func (s *DeliveryStore) Loading() bool { return s.guard.isLoading() }

func (s *DeliveryStore) Configs() []model.DeliveryConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DeliveryConfig, len(s.configs))
	copy(out, s.configs)
	return out
}

func (s *DeliveryStore) Records() []model.DeliveryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DeliveryRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *DeliveryStore) Stats() *model.DeliveryStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// ==================== 动作 ====================

// FetchConfigs 拉取发货配置列表
func (s *DeliveryStore) FetchConfigs(ctx context.Context, enabledOnly bool) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	configs, err := s.client.DeliveryConfigs(ctx, enabledOnly)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取发货配置失败")
		return err
	}

	s.mu.Lock()
	s.configs = configs
	s.mu.Unlock()
	return nil
}

// SaveConfig 保存（首次即创建）发货配置并刷新列表
func (s *DeliveryStore) SaveConfig(ctx context.Context, itemID string, req client.DeliveryConfigReq) error {
	if !s.guard.begin() {
		return nil
	}

	err := s.client.SaveDeliveryConfig(ctx, itemID, req)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "保存发货配置失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "发货配置已保存")
	return s.FetchConfigs(ctx, false)
}

// DeleteConfig 删除发货配置并刷新列表
func (s *DeliveryStore) DeleteConfig(ctx context.Context, itemID string) error {
	if !s.guard.begin() {
		return nil
	}

	err := s.client.DeleteDeliveryConfig(ctx, itemID)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "删除发货配置失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "发货配置已删除")
	return s.FetchConfigs(ctx, false)
}

// SetRecordFilters 改筛选器（发货流水无分页，Limit 控制条数）
func (s *DeliveryStore) SetRecordFilters(filter client.DeliveryRecordFilter) {
	s.mu.Lock()
	s.filters = filter
	s.mu.Unlock()
}

// FetchRecords 拉取发货流水
func (s *DeliveryStore) FetchRecords(ctx context.Context) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	s.mu.Lock()
	filter := s.filters
	s.mu.Unlock()

	records, err := s.client.DeliveryRecords(ctx, filter)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取发货记录失败")
		return err
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// FetchStats 拉取发货统计
func (s *DeliveryStore) FetchStats(ctx context.Context) error {
	stats, err := s.client.DeliveryStats(ctx)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取发货统计失败")
		return err
	}

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
	return nil
}
