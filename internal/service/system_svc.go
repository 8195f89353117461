package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
)

type SystemService struct {
	productRepo      repository.ProductRepository
	syncRepo         repository.SyncRepository
	notificationRepo repository.NotificationRepository
}

// NewSystemService 工厂方法
func NewSystemService(
	productRepo repository.ProductRepository,
	syncRepo repository.SyncRepository,
	notificationRepo repository.NotificationRepository,
) *SystemService {
	return &SystemService{
		productRepo:      productRepo,
		syncRepo:         syncRepo,
		notificationRepo: notificationRepo,
	}
}

// Stats 控制台首页统计卡片
func (s *SystemService) Stats(ctx context.Context) (*model.SystemStats, error) {
	var stats model.SystemStats
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalValue, err = s.productRepo.SumPrice(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveProducts, err = s.productRepo.CountByStatus(ctx, model.ProductStatusActive); err != nil {
		return nil, err
	}
	if stats.ErrorCount, err = s.productRepo.CountBySyncStatus(ctx, model.ProductSyncError); err != nil {
		return nil, err
	}

	withPrompts, err := s.productRepo.CountWithCustomPrompts(ctx)
	if err != nil {
		return nil, err
	}
	if stats.TotalProducts > 0 {
		stats.AiConfigRate = float64(withPrompts) / float64(stats.TotalProducts) * 100
	}

	// 今日完成的同步任务数
	runs, _, err := s.syncRepo.ListRuns(ctx, 1, 200)
	if err != nil {
		return nil, err
	}
	today := time.Now().Truncate(24 * time.Hour)
	for _, run := range runs {
		if run.Status == model.SyncRunCompleted && run.StartTime.After(today) {
			stats.TodaySyncCount++
		}
	}

	return &stats, nil
}

// ==================== 通知 ====================

// NotificationPage 通知分页结果
type NotificationPage struct {
	List   []model.NotificationMessage `json:"list"`
	Total  int64                       `json:"total"`
	Unread int64                       `json:"unreadCount"`
}

// Notifications 通知列表
func (s *SystemService) Notifications(ctx context.Context, page, pageSize int) (*NotificationPage, error) {
	messages, total, unread, err := s.notificationRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.NotificationMessage{}
	}
	return &NotificationPage{List: messages, Total: total, Unread: unread}, nil
}

// MarkNotificationRead 标记已读
func (s *SystemService) MarkNotificationRead(ctx context.Context, id string) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

// Notify 写入一条系统通知
func (s *SystemService) Notify(ctx context.Context, level, title, content string) error {
	return s.notificationRepo.Add(ctx, &model.NotificationMessage{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Type:      level,
		Timestamp: time.Now(),
	})
}
