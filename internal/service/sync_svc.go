package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
)

// ErrSyncInProgress 已有同步任务在运行
var ErrSyncInProgress = errors.New("已有同步任务正在进行中")

type SyncService struct {
	syncRepo    repository.SyncRepository
	productRepo repository.ProductRepository

	mu      sync.Mutex
	cancels map[string]context.CancelFunc // runID -> 取消函数
}

// NewSyncService 工厂方法
func NewSyncService(syncRepo repository.SyncRepository, productRepo repository.ProductRepository) *SyncService {
	return &SyncService{
		syncRepo:    syncRepo,
		productRepo: productRepo,
		cancels:     make(map[string]context.CancelFunc),
	}
}

// ==================== 状态查询 ====================

// Status 最近一次同步任务状态，从未同步时返回空闲态
func (s *SyncService) Status(ctx context.Context) (*model.SyncRun, error) {
	run, err := s.syncRepo.LatestRun(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.SyncRun{Status: ""}, nil
		}
		return nil, err
	}
	return run, nil
}

// History 同步历史分页
func (s *SyncService) History(ctx context.Context, page, pageSize int) ([]model.SyncRun, int64, error) {
	return s.syncRepo.ListRuns(ctx, page, pageSize)
}

// Logs 同步日志，syncID 为空时返回最近日志
func (s *SyncService) Logs(ctx context.Context, syncID string, level string, limit int) ([]model.SyncLog, error) {
	return s.syncRepo.ListLogs(ctx, syncID, level, limit)
}

// ==================== 触发与控制 ====================

// TriggerManual 触发一次手动同步
// itemIDs 为空表示全量，非空表示只同步选中商品
func (s *SyncService) TriggerManual(ctx context.Context, itemIDs []string) (*model.SyncRun, error) {
	return s.startRun(ctx, itemIDs, "")
}

// Retry 重试失败的任务：产生带新 ID 的新任务，旧记录保留在历史里
func (s *SyncService) Retry(ctx context.Context, failedRunID string) (*model.SyncRun, error) {
	failed, err := s.syncRepo.GetRun(ctx, failedRunID)
	if err != nil {
		return nil, fmt.Errorf("同步任务不存在: %w", err)
	}
	if failed.Status != model.SyncRunError {
		return nil, fmt.Errorf("只有失败的任务可以重试，当前状态: %s", failed.Status)
	}
	return s.startRun(ctx, nil, failedRunID)
}

// Cancel 取消运行中的任务
func (s *SyncService) Cancel(ctx context.Context, runID string) error {
	run, err := s.syncRepo.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("同步任务不存在: %w", err)
	}
	if run.Status.Terminal() {
		return fmt.Errorf("任务已结束（%s），无法取消", run.Status)
	}
	if !run.Status.CanTransition(model.SyncRunCancelled) {
		return fmt.Errorf("当前状态 %s 不允许取消", run.Status)
	}

	s.mu.Lock()
	cancel, ok := s.cancels[runID]
	s.mu.Unlock()
	if ok {
		cancel()
		return nil
	}

	// 进程重启后丢失 cancel 句柄的残留任务，直接落库终态
	return s.finishRun(run, model.SyncRunCancelled, "任务已取消")
}

// startRun 创建任务并启动后台执行
func (s *SyncService) startRun(ctx context.Context, itemIDs []string, retryOf string) (*model.SyncRun, error) {
	latest, err := s.syncRepo.LatestRun(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if latest != nil && !latest.Status.Terminal() && latest.Status != "" {
		return nil, ErrSyncInProgress
	}

	run := &model.SyncRun{
		ID:        uuid.NewString(),
		Status:    model.SyncRunPending,
		Progress:  0,
		Message:   "等待执行",
		StartTime: time.Now(),
		RetryOf:   retryOf,
	}
	if err := s.syncRepo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("创建同步任务失败: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[run.ID] = cancel
	s.mu.Unlock()

	go s.execute(runCtx, run.ID, itemIDs)

	log.Printf("[Sync] 同步任务已创建: %s (retryOf=%s)", run.ID, retryOf)
	return run, nil
}

// ==================== 执行器 ====================

// execute 后台执行同步，状态迁移严格走 pending → running → 终态
func (s *SyncService) execute(ctx context.Context, runID string, itemIDs []string) {
	defer func() {
		s.mu.Lock()
		delete(s.cancels, runID)
		s.mu.Unlock()
	}()

	run, err := s.syncRepo.GetRun(context.Background(), runID)
	if err != nil {
		log.Printf("[Sync] 读取任务失败: %v", err)
		return
	}

	if err := s.transition(run, model.SyncRunRunning, "同步中"); err != nil {
		log.Printf("[Sync] 任务 %s 进入运行态失败: %v", runID, err)
		return
	}
	s.addLog(runID, model.SyncLogInfo, "同步任务开始")

	// 收集目标商品
	targets, err := s.collectTargets(ctx, itemIDs)
	if err != nil {
		s.addLog(runID, model.SyncLogError, "查询目标商品失败: "+err.Error())
		_ = s.finishRun(run, model.SyncRunError, "查询目标商品失败")
		return
	}
	if len(targets) == 0 {
		s.addLog(runID, model.SyncLogWarning, "没有需要同步的商品")
		run.AffectedItems = 0
		_ = s.finishRun(run, model.SyncRunCompleted, "没有需要同步的商品")
		return
	}

	// 逐件同步，每件推进一次进度
	synced := 0
	for i, product := range targets {
		select {
		case <-ctx.Done():
			s.addLog(runID, model.SyncLogWarning, "任务被取消")
			run.AffectedItems = synced
			_ = s.finishRun(run, model.SyncRunCancelled, "任务已取消")
			return
		default:
		}

		if err := s.syncOne(ctx, &product); err != nil {
			// 单件执行期间收到取消信号不算失败
			if errors.Is(err, context.Canceled) {
				s.addLog(runID, model.SyncLogWarning, "任务被取消")
				run.AffectedItems = synced
				_ = s.finishRun(run, model.SyncRunCancelled, "任务已取消")
				return
			}
			s.addLog(runID, model.SyncLogError, fmt.Sprintf("商品 %s 同步失败: %v", product.ItemID, err))
			run.AffectedItems = synced
			_ = s.finishRun(run, model.SyncRunError, fmt.Sprintf("商品 %s 同步失败", product.ItemID))
			return
		}

		synced++
		run.Progress = (i + 1) * 100 / len(targets)
		run.Message = fmt.Sprintf("已同步 %d/%d", synced, len(targets))
		if err := s.syncRepo.UpdateRun(context.Background(), run); err != nil {
			log.Printf("[Sync] 更新进度失败: %v", err)
		}
		s.addLog(runID, model.SyncLogInfo, fmt.Sprintf("商品 %s 同步完成", product.ItemID))
	}

	run.AffectedItems = synced
	_ = s.finishRun(run, model.SyncRunCompleted, fmt.Sprintf("同步完成，共 %d 件", synced))
	s.addLog(runID, model.SyncLogInfo, fmt.Sprintf("同步任务结束，共同步 %d 件商品", synced))
}

// collectTargets 确定本次同步的商品集合
func (s *SyncService) collectTargets(ctx context.Context, itemIDs []string) ([]model.Product, error) {
	if len(itemIDs) == 0 {
		products, _, err := s.productRepo.List(ctx, repository.ProductFilter{Page: 1, PageSize: 1000})
		return products, err
	}

	var targets []model.Product
	for _, itemID := range itemIDs {
		product, err := s.productRepo.GetByItemID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		targets = append(targets, *product)
	}
	return targets, nil
}

// syncOne 同步单个商品（推送本地内容到闲鱼侧）
func (s *SyncService) syncOne(ctx context.Context, product *model.Product) error {
	if err := s.productRepo.UpdateFields(ctx, product.ID, map[string]interface{}{
		"sync_status": model.ProductSyncSyncing,
	}); err != nil {
		return err
	}

	// 模拟推送耗时
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	return s.productRepo.UpdateFields(ctx, product.ID, map[string]interface{}{
		"sync_status": model.ProductSyncSynced,
	})
}

// transition 带合法性校验的状态迁移
func (s *SyncService) transition(run *model.SyncRun, to model.SyncRunStatus, message string) error {
	if !run.Status.CanTransition(to) {
		return fmt.Errorf("非法状态迁移: %s -> %s", run.Status, to)
	}
	run.Status = to
	run.Message = message
	return s.syncRepo.UpdateRun(context.Background(), run)
}

// finishRun 落库终态并写结束时间
func (s *SyncService) finishRun(run *model.SyncRun, to model.SyncRunStatus, message string) error {
	if !run.Status.CanTransition(to) {
		return fmt.Errorf("非法状态迁移: %s -> %s", run.Status, to)
	}
	now := time.Now()
	run.Status = to
	run.Message = message
	run.EndTime = &now
	if to == model.SyncRunCompleted {
		run.Progress = 100
	}
	return s.syncRepo.UpdateRun(context.Background(), run)
}

func (s *SyncService) addLog(runID string, level model.SyncLogLevel, message string) {
	entry := &model.SyncLog{
		RunID:     runID,
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
	if err := s.syncRepo.AddLog(context.Background(), entry); err != nil {
		log.Printf("[Sync] 写同步日志失败: %v", err)
	}
}

// ==================== 自动同步配置 ====================

// GetSettings 自动同步配置
func (s *SyncService) GetSettings(ctx context.Context) (*model.AutoSyncSettings, error) {
	return s.syncRepo.GetSettings(ctx)
}

// UpdateSettings 更新自动同步配置
func (s *SyncService) UpdateSettings(ctx context.Context, enabled bool, interval int) (*model.AutoSyncSettings, error) {
	if interval <= 0 {
		interval = 60
	}
	settings, err := s.syncRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings.Enabled = enabled
	settings.Interval = interval
	if enabled {
		next := time.Now().Add(time.Duration(interval) * time.Minute)
		settings.NextSync = &next
	} else {
		settings.NextSync = nil
	}
	if err := s.syncRepo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("保存自动同步配置失败: %w", err)
	}
	return settings, nil
}

// MarkAutoSynced 自动同步完成后刷新时间戳
func (s *SyncService) MarkAutoSynced(ctx context.Context) error {
	settings, err := s.syncRepo.GetSettings(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	settings.LastSync = &now
	if settings.Enabled {
		next := now.Add(time.Duration(settings.Interval) * time.Minute)
		settings.NextSync = &next
	}
	return s.syncRepo.SaveSettings(ctx, settings)
}

// ==================== 连通性测试 ====================

// TestConnection 探测后端服务连通性
func (s *SyncService) TestConnection(ctx context.Context) *model.ConnectionTestResult {
	start := time.Now()
	// 以一次数据库往返作为连通性探测
	if _, err := s.syncRepo.GetSettings(ctx); err != nil {
		return &model.ConnectionTestResult{
			Connected: false,
			Latency:   time.Since(start).Milliseconds(),
			Message:   "服务异常: " + err.Error(),
		}
	}
	return &model.ConnectionTestResult{
		Connected: true,
		Latency:   time.Since(start).Milliseconds(),
		Version:   "1.0.0",
		Message:   "连接正常",
	}
}
