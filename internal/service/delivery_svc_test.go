package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/pkg/database"
)

// ==================== 测试辅助 ====================

func setupDeliveryService(t *testing.T) *DeliveryService {
	db, err := database.InitMemoryDB(&model.Product{}, &model.DeliveryConfig{}, &model.DeliveryRecord{})
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	return NewDeliveryService(repository.NewDeliveryRepository(db), repository.NewProductRepository(db))
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

// ==================== 配置 ====================

func TestDeliveryConfig_SaveDefaults(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	config, err := svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeText,
		Content:      "感谢购买",
	})
	if err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !config.IsEnabled {
		t.Error("未显式指定时配置默认启用")
	}
	if config.StockCount != model.UnlimitedStock {
		t.Errorf("stockCount = %d, want -1（不限库存）", config.StockCount)
	}
}

func TestDeliveryConfig_ZeroValuesPersisted(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	// 显式停用 + 零库存必须原样落库，不能被默认值顶掉
	_, err := svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeText,
		Content:      "感谢购买",
		IsEnabled:    boolPtr(false),
		StockCount:   intPtr(0),
	})
	if err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	stored, err := svc.GetConfig(ctx, "item-001")
	if err != nil {
		t.Fatalf("读取配置失败: %v", err)
	}
	if stored.IsEnabled {
		t.Error("停用状态未持久化，落库后变成了启用")
	}
	if stored.StockCount != 0 {
		t.Errorf("零库存未持久化, got %d", stored.StockCount)
	}
}

func TestDeliveryConfig_UpsertByItemID(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	first, _ := svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeText,
		Content:      "旧内容",
	})

	second, err := svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeText,
		Content:      "新内容",
	})
	if err != nil {
		t.Fatalf("二次保存失败: %v", err)
	}

	if second.ID != first.ID {
		t.Error("同一商品重复保存应复用已有配置行")
	}
	if second.Content != "新内容" {
		t.Errorf("content = %s, want 新内容", second.Content)
	}

	configs, _ := svc.ListConfigs(ctx, false)
	if len(configs) != 1 {
		t.Errorf("配置数量 = %d, want 1", len(configs))
	}
}

func TestDeliveryConfig_Validation(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	if _, err := svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID: "item-001", DeliveryType: "email", Content: "x",
	}); err == nil {
		t.Error("非法发货类型应被拒绝")
	}

	if _, err := svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID: "item-001", DeliveryType: model.DeliveryTypeText,
	}); err == nil {
		t.Error("空发货内容应被拒绝")
	}

	if _, err := svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID: "item-001", DeliveryType: model.DeliveryTypeText, Content: "x",
		StockCount: intPtr(-5),
	}); err == nil {
		t.Error("小于 -1 的库存应被拒绝")
	}
}

// ==================== 发货 ====================

func TestDeliver_Success(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	// 网盘类型带提取码
	svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:         "item-001",
		DeliveryType:   model.DeliveryTypeNetdisk,
		Content:        "https://pan.example.com/s/abc",
		ExtractionCode: "x9k2",
		CustomMessage:  "感谢购买",
	})

	record, err := svc.Deliver(ctx, &DeliverReq{ItemID: "item-001", BuyerID: "buyer-1", OrderID: "order-1"})
	if err != nil {
		t.Fatalf("发货失败: %v", err)
	}

	if record.Status != model.DeliverySuccess {
		t.Errorf("status = %s, want success", record.Status)
	}
	if !strings.Contains(record.Content, "提取码: x9k2") {
		t.Errorf("网盘发货应附带提取码: %s", record.Content)
	}
	if !strings.HasPrefix(record.Content, "感谢购买") {
		t.Errorf("附加留言应在内容之前: %s", record.Content)
	}
}

func TestDeliver_NoConfig(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	record, err := svc.Deliver(ctx, &DeliverReq{ItemID: "item-404", BuyerID: "buyer-1"})
	if err == nil {
		t.Fatal("未配置商品发货应失败")
	}

	// 失败同样留痕
	if record == nil || record.Status != model.DeliveryFailed {
		t.Fatal("失败发货应写失败流水")
	}
	records, total, _ := svc.Records(ctx, repository.DeliveryRecordFilter{ItemID: "item-404", Page: 1, PageSize: 10})
	if total != 1 || len(records) != 1 {
		t.Errorf("失败流水缺失: total=%d", total)
	}
}

func TestDeliver_DisabledConfig(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeText,
		Content:      "x",
		IsEnabled:    boolPtr(false),
	})

	if _, err := svc.Deliver(ctx, &DeliverReq{ItemID: "item-001"}); err == nil {
		t.Error("停用配置不应发货")
	}
}

func TestDeliver_StockDecrement(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeCardKey,
		Content:      "KEY-AAAA-BBBB",
		StockCount:   intPtr(2),
	})

	for i := 0; i < 2; i++ {
		if _, err := svc.Deliver(ctx, &DeliverReq{ItemID: "item-001"}); err != nil {
			t.Fatalf("第 %d 次发货失败: %v", i+1, err)
		}
	}

	config, _ := svc.GetConfig(ctx, "item-001")
	if config.StockCount != 0 {
		t.Errorf("库存 = %d, want 0", config.StockCount)
	}

	// 库存耗尽后拒绝发货
	if _, err := svc.Deliver(ctx, &DeliverReq{ItemID: "item-001"}); err == nil {
		t.Error("库存为 0 时应拒绝发货")
	}
}

func TestDecrementStock_GuardedAtZero(t *testing.T) {
	db, err := database.InitMemoryDB(&model.Product{}, &model.DeliveryConfig{}, &model.DeliveryRecord{})
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	deliveryRepo := repository.NewDeliveryRepository(db)
	svc := NewDeliveryService(deliveryRepo, repository.NewProductRepository(db))
	ctx := context.Background()

	svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeCardKey,
		Content:      "KEY-AAAA",
		StockCount:   intPtr(1),
	})

	// 条件扣减只能成功一次，扣到 0 后必须显式报错而不是静默空操作
	if err := deliveryRepo.DecrementStock(ctx, "item-001"); err != nil {
		t.Fatalf("首次扣减失败: %v", err)
	}
	if err := deliveryRepo.DecrementStock(ctx, "item-001"); !errors.Is(err, repository.ErrStockDepleted) {
		t.Fatalf("库存为 0 时扣减应报 ErrStockDepleted, got %v", err)
	}
}

func TestDeliver_ConcurrentLastUnit(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeCardKey,
		Content:      "KEY-AAAA",
		StockCount:   intPtr(1),
	})

	// 两个发货抢最后一件：无论怎么交错，成功的必须正好一单
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Deliver(ctx, &DeliverReq{
				ItemID:  "item-001",
				BuyerID: fmt.Sprintf("buyer-%d", i),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("最后一件只能发出一单, got %d", succeeded)
	}

	config, _ := svc.GetConfig(ctx, "item-001")
	if config.StockCount != 0 {
		t.Errorf("库存 = %d, want 0", config.StockCount)
	}

	// 两单都留痕：一条成功一条失败
	records, total, _ := svc.Records(ctx, repository.DeliveryRecordFilter{ItemID: "item-001", Page: 1, PageSize: 10})
	if total != 2 {
		t.Fatalf("流水应有 2 条, got %d", total)
	}
	var success, failed int
	for _, record := range records {
		switch record.Status {
		case model.DeliverySuccess:
			success++
		case model.DeliveryFailed:
			failed++
		}
	}
	if success != 1 || failed != 1 {
		t.Errorf("流水应为一成一败, got success=%d failed=%d", success, failed)
	}
}

func TestDeliver_UnlimitedStockNotDecremented(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID:       "item-001",
		DeliveryType: model.DeliveryTypeText,
		Content:      "x",
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.Deliver(ctx, &DeliverReq{ItemID: "item-001"}); err != nil {
			t.Fatalf("发货失败: %v", err)
		}
	}

	config, _ := svc.GetConfig(ctx, "item-001")
	if config.StockCount != model.UnlimitedStock {
		t.Errorf("不限库存不应被扣减: %d", config.StockCount)
	}
}

// ==================== 统计 ====================

func TestDeliveryStats(t *testing.T) {
	svc := setupDeliveryService(t)
	ctx := context.Background()

	svc.SaveConfig(ctx, &DeliveryConfigReq{
		ItemID: "item-001", DeliveryType: model.DeliveryTypeText, Content: "x",
	})

	svc.Deliver(ctx, &DeliverReq{ItemID: "item-001"}) // 成功
	svc.Deliver(ctx, &DeliverReq{ItemID: "item-404"}) // 失败

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	if stats.TotalDeliveries != 2 || stats.SuccessDeliveries != 1 {
		t.Errorf("发货计数错误: total=%d success=%d", stats.TotalDeliveries, stats.SuccessDeliveries)
	}
	if stats.SuccessRate != 50 {
		t.Errorf("成功率 = %v, want 50", stats.SuccessRate)
	}
}
