package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"xianyu_admin_v1_202509/internal/service"
)

// ==================== CleanupTask 数据清理任务 ====================

// CleanupTask 定期清理过期的发货流水
type CleanupTask struct {
	deliveryService *service.DeliveryService
	cron            *cron.Cron

	retentionDays int
	spec          string
}

// NewCleanupTask 创建清理任务，流水默认保留 90 天
func NewCleanupTask(deliveryService *service.DeliveryService) *CleanupTask {
	return &CleanupTask{
		deliveryService: deliveryService,
		cron:            cron.New(),
		retentionDays:   90,
		spec:            "0 3 * * *", // 每天凌晨 3 点
	}
}

// SetRetention 设置保留天数
func (t *CleanupTask) SetRetention(days int) {
	if days > 0 {
		t.retentionDays = days
	}
}

// Start 启动定时清理
func (t *CleanupTask) Start() error {
	if _, err := t.cron.AddFunc(t.spec, t.run); err != nil {
		return fmt.Errorf("注册清理任务失败: %w", err)
	}
	t.cron.Start()
	log.Printf("[Task] 清理任务已启动 (%s, 保留 %d 天)", t.spec, t.retentionDays)
	return nil
}

// Stop 停止任务
func (t *CleanupTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[Task] 清理任务已停止")
}

func (t *CleanupTask) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := t.deliveryService.CleanupRecords(ctx, t.retentionDays)
	if err != nil {
		log.Printf("[Task] 清理发货流水失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Task] 已清理 %d 条过期发货流水", deleted)
	}
}
