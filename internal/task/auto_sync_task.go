package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"xianyu_admin_v1_202509/internal/service"
)

// ==================== AutoSyncTask 自动同步任务 ====================

// AutoSyncTask 按自动同步配置定期触发全量同步
// 间隔改动在下一次检查周期生效，关闭后不再触发
type AutoSyncTask struct {
	syncService *service.SyncService
	cron        *cron.Cron

	// 检查周期：每分钟对照一次配置里的 nextSync
	checkSpec string
}

// NewAutoSyncTask 创建自动同步任务
func NewAutoSyncTask(syncService *service.SyncService) *AutoSyncTask {
	return &AutoSyncTask{
		syncService: syncService,
		cron:        cron.New(),
		checkSpec:   "@every 1m",
	}
}

// Start 启动定时检查
func (t *AutoSyncTask) Start() error {
	if _, err := t.cron.AddFunc(t.checkSpec, t.check); err != nil {
		return fmt.Errorf("注册自动同步任务失败: %w", err)
	}
	t.cron.Start()
	log.Printf("[Task] 自动同步任务已启动 (%s)", t.checkSpec)
	return nil
}

// Stop 停止任务，等待正在执行的检查结束
func (t *AutoSyncTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[Task] 自动同步任务已停止")
}

// check 到点则触发一次全量同步
func (t *AutoSyncTask) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settings, err := t.syncService.GetSettings(ctx)
	if err != nil {
		log.Printf("[Task] 读取自动同步配置失败: %v", err)
		return
	}
	if !settings.Enabled {
		return
	}
	if settings.NextSync != nil && time.Now().Before(*settings.NextSync) {
		return
	}

	if _, err := t.syncService.TriggerManual(ctx, nil); err != nil {
		// 手动任务占用中是正常情况，顺延到下一个周期
		if errors.Is(err, service.ErrSyncInProgress) {
			return
		}
		log.Printf("[Task] 自动同步触发失败: %v", err)
		return
	}

	if err := t.syncService.MarkAutoSynced(ctx); err != nil {
		log.Printf("[Task] 刷新自动同步时间失败: %v", err)
	}
	log.Println("[Task] 自动同步已触发")
}
