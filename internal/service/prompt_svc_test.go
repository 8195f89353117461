package service

import (
	"context"
	"strings"
	"testing"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/pkg/database"
)

// ==================== 测试辅助 ====================

func setupPromptService(t *testing.T) (*PromptService, *ProductService) {
	db, err := database.InitMemoryDB(&model.Product{}, &model.PromptTemplate{})
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	return NewPromptService(productRepo, repository.NewTemplateRepository(db)),
		NewProductService(productRepo)
}

func createTestProduct(t *testing.T, products *ProductService) *ProductView {
	view, err := products.Create(context.Background(), &ProductCreateReq{
		ItemID:   "item-001",
		Title:    "二手机械键盘",
		Desc:     "九成新",
		Category: "数码",
		Price:    299,
	})
	if err != nil {
		t.Fatalf("创建测试商品失败: %v", err)
	}
	return view
}

// ==================== 商品提示词 ====================

func TestGetProductPrompts_FourKeysAlways(t *testing.T) {
	svc, products := setupPromptService(t)
	view := createTestProduct(t, products)

	prompts, err := svc.GetProductPrompts(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("读取提示词失败: %v", err)
	}

	// 未配置任何提示词时四键也要恒全且为空
	for _, pt := range model.AllPromptTypes {
		if prompts.Get(pt) != "" {
			t.Errorf("槽位 %s 应为空串", pt)
		}
	}
}

func TestUpdateProductPrompt_SetsHasCustomPrompts(t *testing.T) {
	svc, products := setupPromptService(t)
	view := createTestProduct(t, products)
	ctx := context.Background()

	prompts, err := svc.UpdateProductPrompt(ctx, view.ID, model.PromptTypePrice, "最低 {price} 元，不议价")
	if err != nil {
		t.Fatalf("保存提示词失败: %v", err)
	}
	if prompts.Get(model.PromptTypePrice) != "最低 {price} 元，不议价" {
		t.Errorf("槽位内容错误: %s", prompts.Get(model.PromptTypePrice))
	}

	after, _ := products.Get(ctx, view.ID)
	if !after.HasCustomPrompts {
		t.Error("配置槽位后 hasCustomPrompts 应为 true")
	}

	// 清空唯一槽位后标记应回落
	if _, err := svc.UpdateProductPrompt(ctx, view.ID, model.PromptTypePrice, ""); err != nil {
		t.Fatalf("清空提示词失败: %v", err)
	}
	after, _ = products.Get(ctx, view.ID)
	if after.HasCustomPrompts {
		t.Error("全部槽位清空后 hasCustomPrompts 应为 false")
	}
}

func TestUpdateProductPrompt_InvalidType(t *testing.T) {
	svc, products := setupPromptService(t)
	view := createTestProduct(t, products)

	if _, err := svc.UpdateProductPrompt(context.Background(), view.ID, "bargain", "x"); err == nil {
		t.Error("非法槽位类型应被拒绝")
	}
}

// ==================== 模板 ====================

func TestTemplateCRUD(t *testing.T) {
	svc, _ := setupPromptService(t)
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, &TemplateCreateReq{
		Name:    "强硬议价",
		Type:    model.PromptTypePrice,
		Content: "{title} 不讲价",
	})
	if err != nil {
		t.Fatalf("创建模板失败: %v", err)
	}
	if tpl.ID == "" {
		t.Fatal("模板 ID 不应为空")
	}

	// 部分字段更新：未携带的字段保持原值
	updated, err := svc.UpdateTemplate(ctx, tpl.ID, &TemplateUpdateReq{Name: "柔和议价"})
	if err != nil {
		t.Fatalf("更新模板失败: %v", err)
	}
	if updated.Name != "柔和议价" {
		t.Errorf("name = %s, want 柔和议价", updated.Name)
	}
	if updated.Content != "{title} 不讲价" {
		t.Errorf("未更新字段被改写: %s", updated.Content)
	}

	list, err := svc.ListTemplates(ctx, model.PromptTypePrice)
	if err != nil || len(list) != 1 {
		t.Fatalf("按类型过滤模板失败: err=%v len=%d", err, len(list))
	}

	if err := svc.DeleteTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("删除模板失败: %v", err)
	}
	list, _ = svc.ListTemplates(ctx, "")
	if len(list) != 0 {
		t.Errorf("删除后模板仍存在: %d", len(list))
	}
}

func TestApplyTemplate_CopyOnWrite(t *testing.T) {
	svc, products := setupPromptService(t)
	view := createTestProduct(t, products)
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, &TemplateCreateReq{
		Name:    "技术答疑",
		Type:    model.PromptTypeTech,
		Content: "配置问题请看描述",
	})
	if err != nil {
		t.Fatalf("创建模板失败: %v", err)
	}

	if _, err := svc.ApplyTemplate(ctx, view.ID, tpl.ID); err != nil {
		t.Fatalf("应用模板失败: %v", err)
	}

	// 模板后续修改不应回写已应用的商品
	if _, err := svc.UpdateTemplate(ctx, tpl.ID, &TemplateUpdateReq{Content: "改过的内容"}); err != nil {
		t.Fatalf("更新模板失败: %v", err)
	}

	prompts, _ := svc.GetProductPrompts(ctx, view.ID)
	if prompts.Get(model.PromptTypeTech) != "配置问题请看描述" {
		t.Errorf("商品槽位应保留应用时的内容: %s", prompts.Get(model.PromptTypeTech))
	}
}

// ==================== 预览 ====================

func TestPreview_ProductFieldsWithOverlay(t *testing.T) {
	svc, products := setupPromptService(t)
	view := createTestProduct(t, products)

	result, err := svc.Preview(context.Background(),
		"{title} 售价 {price}，买家问：{question}",
		view.ID,
		map[string]interface{}{"question": "能便宜吗", "price": float64(250)})
	if err != nil {
		t.Fatalf("预览失败: %v", err)
	}

	// 调用方传入的变量覆盖商品字段
	if !strings.Contains(result.Preview, "250") {
		t.Errorf("传入变量应覆盖商品字段: %s", result.Preview)
	}
	if !strings.Contains(result.Preview, "二手机械键盘") {
		t.Errorf("商品字段未参与渲染: %s", result.Preview)
	}
	if !strings.Contains(result.Preview, "能便宜吗") {
		t.Errorf("额外变量未参与渲染: %s", result.Preview)
	}
}

func TestPreview_WithoutProduct(t *testing.T) {
	svc, _ := setupPromptService(t)

	result, err := svc.Preview(context.Background(), "你好 {title}", 0, nil)
	if err != nil {
		t.Fatalf("预览失败: %v", err)
	}
	if !strings.Contains(result.Preview, "{title}") {
		t.Errorf("无商品且无变量时占位符应原样保留: %s", result.Preview)
	}
}
