package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/pkg/database"
)

// ==================== 测试辅助 ====================

func setupProductService(t *testing.T) (*ProductService, *gorm.DB) {
	db, err := database.InitMemoryDB(&model.Product{})
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db)), db
}

// ==================== 创建 ====================

func TestProductCreate_Defaults(t *testing.T) {
	svc, _ := setupProductService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, &ProductCreateReq{
		ItemID: "item-001",
		Title:  "二手机械键盘",
		Price:  299,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if view.Status != model.ProductStatusDraft {
		t.Errorf("status = %s, want draft", view.Status)
	}
	if view.SyncStatus != model.ProductSyncPending {
		t.Errorf("syncStatus = %s, want pending", view.SyncStatus)
	}
	if view.HasCustomPrompts {
		t.Error("新建商品不应标记为已配置提示词")
	}
}

func TestProductCreate_DuplicateItemID(t *testing.T) {
	svc, _ := setupProductService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 1}); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if _, err := svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "B", Price: 2}); err == nil {
		t.Error("重复的 itemId 应返回错误")
	}
}

func TestProductCreate_NegativePrice(t *testing.T) {
	svc, _ := setupProductService(t)

	if _, err := svc.Create(context.Background(), &ProductCreateReq{
		ItemID: "item-002", Title: "A", Price: -1,
	}); err == nil {
		t.Error("负数价格应被拒绝")
	}
}

// ==================== 更新 ====================

func TestProductUpdate_ItemIDImmutable(t *testing.T) {
	svc, _ := setupProductService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	updated, err := svc.Update(ctx, view.ID, map[string]interface{}{
		"itemId": "item-999",
		"title":  "新标题",
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	if updated.ItemID != "item-001" {
		t.Errorf("itemId 不可修改, got %s", updated.ItemID)
	}
	if updated.Title != "新标题" {
		t.Errorf("title = %s, want 新标题", updated.Title)
	}
}

func TestProductUpdate_ResetsSyncStatus(t *testing.T) {
	svc, db := setupProductService(t)
	ctx := context.Background()

	view, _ := svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})

	// 先把商品置为已同步
	db.Model(&model.Product{}).Where("id = ?", view.ID).
		Update("sync_status", model.ProductSyncSynced)

	updated, err := svc.Update(ctx, view.ID, map[string]interface{}{"title": "B"})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.SyncStatus != model.ProductSyncPending {
		t.Errorf("内容编辑后 syncStatus 应回到 pending, got %s", updated.SyncStatus)
	}
}

func TestProductUpdate_InvalidStatus(t *testing.T) {
	svc, _ := setupProductService(t)
	ctx := context.Background()

	view, _ := svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})

	if _, err := svc.Update(ctx, view.ID, map[string]interface{}{"status": "unknown"}); err == nil {
		t.Error("非法状态应被拒绝")
	}
}

// ==================== 批量操作与统计 ====================

func TestProductBatchUpdateStatus(t *testing.T) {
	svc, _ := setupProductService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})
	b, _ := svc.Create(ctx, &ProductCreateReq{ItemID: "item-002", Title: "B", Price: 20})

	if err := svc.BatchUpdateStatus(ctx, []int64{a.ID, b.ID}, model.ProductStatusActive); err != nil {
		t.Fatalf("批量改状态失败: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	if stats.Active != 2 {
		t.Errorf("active = %d, want 2", stats.Active)
	}
	if stats.TotalValue != 30 {
		t.Errorf("totalValue = %v, want 30", stats.TotalValue)
	}
	if stats.AvgPrice != 15 {
		t.Errorf("avgPrice = %v, want 15", stats.AvgPrice)
	}
}

func TestProductList_KeywordFilter(t *testing.T) {
	svc, _ := setupProductService(t)
	ctx := context.Background()

	svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "机械键盘", Price: 10})
	svc.Create(ctx, &ProductCreateReq{ItemID: "item-002", Title: "显示器", Price: 20})

	views, total, err := svc.List(ctx, repository.ProductFilter{Keyword: "键盘", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("关键字过滤结果错误: total=%d len=%d", total, len(views))
	}
	if views[0].ItemID != "item-001" {
		t.Errorf("命中商品错误: %s", views[0].ItemID)
	}
}

func TestProductBatchDelete(t *testing.T) {
	svc, _ := setupProductService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, &ProductCreateReq{ItemID: "item-001", Title: "A", Price: 10})
	b, _ := svc.Create(ctx, &ProductCreateReq{ItemID: "item-002", Title: "B", Price: 20})

	if err := svc.BatchDelete(ctx, []int64{a.ID, b.ID}); err != nil {
		t.Fatalf("批量删除失败: %v", err)
	}

	_, total, _ := svc.List(ctx, repository.ProductFilter{Page: 1, PageSize: 10})
	if total != 0 {
		t.Errorf("删除后应无商品, total=%d", total)
	}
}
