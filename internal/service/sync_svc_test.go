package service

import (
	"context"
	"testing"
	"time"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/pkg/database"
)

// ==================== 测试辅助 ====================

func setupSyncService(t *testing.T) (*SyncService, repository.SyncRepository, *ProductService) {
	db, err := database.InitMemoryDB(&model.Product{}, &model.SyncRun{}, &model.SyncLog{}, &model.AutoSyncSettings{})
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	syncRepo := repository.NewSyncRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewSyncService(syncRepo, productRepo), syncRepo, NewProductService(productRepo)
}

// waitTerminal 轮询等待任务进入终态
func waitTerminal(t *testing.T, svc *SyncService, runID string) *model.SyncRun {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		run, err := svc.Status(context.Background())
		if err == nil && run.ID == runID && run.Status.Terminal() {
			return run
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("任务 %s 超时未结束", runID)
	return nil
}

// ==================== 执行 ====================

func TestSyncRun_CompletesAndSyncsProducts(t *testing.T) {
	svc, _, products := setupSyncService(t)
	ctx := context.Background()

	products.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})
	products.Create(ctx, &ProductCreateReq{ItemID: "item-002", Title: "B", Price: 20})

	run, err := svc.TriggerManual(ctx, nil)
	if err != nil {
		t.Fatalf("触发同步失败: %v", err)
	}
	if run.Status != model.SyncRunPending {
		t.Errorf("新任务状态 = %s, want pending", run.Status)
	}

	done := waitTerminal(t, svc, run.ID)
	if done.Status != model.SyncRunCompleted {
		t.Fatalf("任务状态 = %s, want completed (%s)", done.Status, done.Message)
	}
	if done.Progress != 100 {
		t.Errorf("完成后进度 = %d, want 100", done.Progress)
	}
	if done.AffectedItems != 2 {
		t.Errorf("affectedItems = %d, want 2", done.AffectedItems)
	}
	if done.EndTime == nil {
		t.Error("终态任务应有结束时间")
	}

	view, _ := products.GetByItemID(ctx, "item-001")
	if view.SyncStatus != model.ProductSyncSynced {
		t.Errorf("同步后商品状态 = %s, want synced", view.SyncStatus)
	}

	logs, err := svc.Logs(ctx, run.ID, "", 100)
	if err != nil || len(logs) == 0 {
		t.Errorf("任务应产生日志: err=%v len=%d", err, len(logs))
	}
}

func TestSyncRun_SelectedItemsOnly(t *testing.T) {
	svc, _, products := setupSyncService(t)
	ctx := context.Background()

	products.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})
	products.Create(ctx, &ProductCreateReq{ItemID: "item-002", Title: "B", Price: 20})

	run, err := svc.TriggerManual(ctx, []string{"item-002"})
	if err != nil {
		t.Fatalf("触发同步失败: %v", err)
	}

	done := waitTerminal(t, svc, run.ID)
	if done.AffectedItems != 1 {
		t.Errorf("affectedItems = %d, want 1", done.AffectedItems)
	}

	untouched, _ := products.GetByItemID(ctx, "item-001")
	if untouched.SyncStatus != model.ProductSyncPending {
		t.Errorf("未选中商品不应被同步: %s", untouched.SyncStatus)
	}
}

func TestSync_RejectsConcurrentRun(t *testing.T) {
	svc, _, products := setupSyncService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		products.Create(ctx, &ProductCreateReq{ItemID: "item-00" + string(rune('1'+i)), Title: "A", Price: 10})
	}

	run, err := svc.TriggerManual(ctx, nil)
	if err != nil {
		t.Fatalf("触发同步失败: %v", err)
	}

	if _, err := svc.TriggerManual(ctx, nil); err != ErrSyncInProgress {
		t.Errorf("重复触发应返回 ErrSyncInProgress, got %v", err)
	}

	waitTerminal(t, svc, run.ID)
}

// ==================== 取消与重试 ====================

func TestSyncCancel_RunningTask(t *testing.T) {
	svc, _, products := setupSyncService(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		products.Create(ctx, &ProductCreateReq{ItemID: "item-0" + string(rune('0'+i)), Title: "A", Price: 10})
	}

	run, err := svc.TriggerManual(ctx, nil)
	if err != nil {
		t.Fatalf("触发同步失败: %v", err)
	}

	// 等任务进入运行态后取消
	time.Sleep(60 * time.Millisecond)
	if err := svc.Cancel(ctx, run.ID); err != nil {
		t.Fatalf("取消失败: %v", err)
	}

	done := waitTerminal(t, svc, run.ID)
	if done.Status != model.SyncRunCancelled {
		t.Errorf("取消后状态 = %s, want cancelled", done.Status)
	}
}

func TestSyncCancel_TerminalTaskRejected(t *testing.T) {
	svc, syncRepo, _ := setupSyncService(t)
	ctx := context.Background()

	run := &model.SyncRun{
		ID:        "run-done",
		Status:    model.SyncRunCompleted,
		StartTime: time.Now(),
	}
	if err := syncRepo.CreateRun(ctx, run); err != nil {
		t.Fatalf("写入测试任务失败: %v", err)
	}

	if err := svc.Cancel(ctx, "run-done"); err == nil {
		t.Error("终态任务取消应返回错误")
	}
}

func TestSyncRetry_OnlyFailedRuns(t *testing.T) {
	svc, syncRepo, products := setupSyncService(t)
	ctx := context.Background()

	products.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})

	completed := &model.SyncRun{
		ID:        "run-ok",
		Status:    model.SyncRunCompleted,
		StartTime: time.Now().Add(-2 * time.Minute),
	}
	syncRepo.CreateRun(ctx, completed)
	if _, err := svc.Retry(ctx, "run-ok"); err == nil {
		t.Error("成功任务不应允许重试")
	}

	failed := &model.SyncRun{
		ID:        "run-failed",
		Status:    model.SyncRunError,
		StartTime: time.Now().Add(-time.Minute),
	}
	syncRepo.CreateRun(ctx, failed)

	retry, err := svc.Retry(ctx, "run-failed")
	if err != nil {
		t.Fatalf("重试失败: %v", err)
	}
	if retry.ID == "run-failed" {
		t.Error("重试应产生新任务 ID")
	}
	if retry.RetryOf != "run-failed" {
		t.Errorf("retryOf = %s, want run-failed", retry.RetryOf)
	}

	done := waitTerminal(t, svc, retry.ID)
	if done.Status != model.SyncRunCompleted {
		t.Errorf("重试任务应正常完成, got %s", done.Status)
	}

	// 旧的失败记录保留在历史里
	old, err := syncRepo.GetRun(ctx, "run-failed")
	if err != nil || old.Status != model.SyncRunError {
		t.Errorf("失败记录不应被改写: err=%v status=%s", err, old.Status)
	}
}

// ==================== 状态与配置 ====================

func TestSyncStatus_EmptyWhenNeverRan(t *testing.T) {
	svc, _, _ := setupSyncService(t)

	run, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("查询状态失败: %v", err)
	}
	if run.Status != "" {
		t.Errorf("从未同步时应返回空闲态, got %s", run.Status)
	}
}

func TestAutoSyncSettings_Defaults(t *testing.T) {
	svc, _, _ := setupSyncService(t)
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("读取配置失败: %v", err)
	}
	if settings.Enabled {
		t.Error("自动同步默认应关闭")
	}
	if settings.Interval != 60 {
		t.Errorf("默认间隔 = %d, want 60", settings.Interval)
	}
}

func TestAutoSyncSettings_Update(t *testing.T) {
	svc, _, _ := setupSyncService(t)
	ctx := context.Background()

	settings, err := svc.UpdateSettings(ctx, true, 0)
	if err != nil {
		t.Fatalf("更新配置失败: %v", err)
	}
	if settings.Interval != 60 {
		t.Errorf("非法间隔应回落到 60, got %d", settings.Interval)
	}
	if settings.NextSync == nil {
		t.Error("启用后应排定下次同步时间")
	}

	settings, _ = svc.UpdateSettings(ctx, false, 30)
	if settings.NextSync != nil {
		t.Error("停用后不应保留下次同步时间")
	}
}
