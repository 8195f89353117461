package service

import (
	"context"
	"testing"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/pkg/database"
)

// ==================== 测试辅助 ====================

func setupSystemService(t *testing.T) (*SystemService, *ProductService, *PromptService) {
	db, err := database.InitMemoryDB(
		&model.Product{}, &model.PromptTemplate{},
		&model.SyncRun{}, &model.SyncLog{}, &model.AutoSyncSettings{},
		&model.NotificationMessage{},
	)
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	svc := NewSystemService(productRepo, repository.NewSyncRepository(db), repository.NewNotificationRepository(db))
	return svc, NewProductService(productRepo), NewPromptService(productRepo, repository.NewTemplateRepository(db))
}

// ==================== 统计 ====================

func TestSystemStats(t *testing.T) {
	svc, products, prompts := setupSystemService(t)
	ctx := context.Background()

	a, _ := products.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 100})
	products.Create(ctx, &ProductCreateReq{ItemID: "item-002", Title: "B", Price: 200})
	products.BatchUpdateStatus(ctx, []int64{a.ID}, model.ProductStatusActive)
	prompts.UpdateProductPrompt(ctx, a.ID, model.PromptTypePrice, "不讲价")

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}

	if stats.TotalProducts != 2 {
		t.Errorf("totalProducts = %d, want 2", stats.TotalProducts)
	}
	if stats.ActiveProducts != 1 {
		t.Errorf("activeProducts = %d, want 1", stats.ActiveProducts)
	}
	if stats.TotalValue != 300 {
		t.Errorf("totalValue = %v, want 300", stats.TotalValue)
	}
	// 两件商品中一件配置了提示词
	if stats.AiConfigRate != 50 {
		t.Errorf("aiConfigRate = %v, want 50", stats.AiConfigRate)
	}
}

func TestSystemStats_Empty(t *testing.T) {
	svc, _, _ := setupSystemService(t)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	if stats.TotalProducts != 0 || stats.AiConfigRate != 0 {
		t.Errorf("空库统计应全为零: %+v", stats)
	}
}

// ==================== 通知 ====================

func TestNotifications(t *testing.T) {
	svc, _, _ := setupSystemService(t)
	ctx := context.Background()

	if err := svc.Notify(ctx, "warning", "同步失败", "商品 item-001 同步失败"); err != nil {
		t.Fatalf("写通知失败: %v", err)
	}
	svc.Notify(ctx, "info", "同步完成", "共同步 3 件商品")

	page, err := svc.Notifications(ctx, 1, 10)
	if err != nil {
		t.Fatalf("查询通知失败: %v", err)
	}
	if page.Total != 2 || page.Unread != 2 {
		t.Fatalf("通知计数错误: total=%d unread=%d", page.Total, page.Unread)
	}

	if err := svc.MarkNotificationRead(ctx, page.List[0].ID); err != nil {
		t.Fatalf("标记已读失败: %v", err)
	}
	page, _ = svc.Notifications(ctx, 1, 10)
	if page.Unread != 1 {
		t.Errorf("已读后 unread = %d, want 1", page.Unread)
	}
}
