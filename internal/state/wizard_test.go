package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/notify"
)

// ==================== 测试辅助 ====================

type nullTokenStore struct{}

func (nullTokenStore) Token() string { return "t" }
func (nullTokenStore) Clear()        {}

// newWizardBackend 记录创建调用次数的假后端
func newWizardBackend(t *testing.T) (*ProductStore, *int) {
	t.Helper()
	calls := new(int)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost && r.URL.Path == "/api/products" {
			*calls++
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"id": 1, "itemId": "item-001", "title": "键盘"},
			})
			return
		}
		// 创建成功后的列表刷新
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"list": []interface{}{}, "total": 0, "page": 1, "pageSize": 20},
		})
	}))
	t.Cleanup(server.Close)

	c := client.New(server.URL, nullTokenStore{}, notify.NewCenter(nil))
	return NewProductStore(c, nil), calls
}

// ==================== 步进 ====================

func TestWizard_StepValidation(t *testing.T) {
	store, _ := newWizardBackend(t)
	w := NewProductCreateWizard(store)

	// 第一步缺必填项不能前进
	if err := w.Next(); err == nil {
		t.Error("缺少必填项时不应允许前进")
	}
	if w.Step() != StepBasicInfo {
		t.Errorf("校验失败后应停在第一步, got %v", w.Step())
	}

	w.SetBasicInfo(BasicInfo{ItemID: "带空格 id", Title: "键盘", Price: 10})
	if err := w.Next(); err == nil {
		t.Error("非法 itemId 字符应被拒绝")
	}

	w.SetBasicInfo(BasicInfo{ItemID: "item-001", Title: "键盘", Price: 10})
	if err := w.Next(); err != nil {
		t.Fatalf("合法数据前进失败: %v", err)
	}
	if w.Step() != StepStrategy {
		t.Errorf("step = %v, want StepStrategy", w.Step())
	}

	w.SetStrategy(model.ProductSettings{MaxDiscount: 2})
	if err := w.Next(); err == nil {
		t.Error("折扣超出范围应被拒绝")
	}

	w.SetStrategy(model.ProductSettings{MaxDiscount: 0.8, UrgencyLevel: "high"})
	if err := w.Next(); err != nil {
		t.Fatalf("第二步前进失败: %v", err)
	}
	if w.Step() != StepConfirm {
		t.Errorf("step = %v, want StepConfirm", w.Step())
	}

	// 最后一步不能继续前进
	if err := w.Next(); err == nil {
		t.Error("确认步不应允许继续前进")
	}
}

func TestWizard_BackKeepsData(t *testing.T) {
	store, _ := newWizardBackend(t)
	w := NewProductCreateWizard(store)

	w.SetBasicInfo(BasicInfo{ItemID: "item-001", Title: "键盘", Price: 10})
	w.Next()
	w.Back()

	if w.Step() != StepBasicInfo {
		t.Errorf("后退后应回到第一步, got %v", w.Step())
	}
	if w.BasicInfo().Title != "键盘" {
		t.Error("后退不应丢失已录入数据")
	}

	// 第一步继续后退无效果
	w.Back()
	if w.Step() != StepBasicInfo {
		t.Error("第一步后退应原地不动")
	}
}

// ==================== 提交 ====================

func TestWizard_SingleSubmitAtConfirm(t *testing.T) {
	store, calls := newWizardBackend(t)
	w := NewProductCreateWizard(store)
	ctx := context.Background()

	// 未到确认步不能提交，也不应产生网络调用
	if _, err := w.Submit(ctx); err == nil {
		t.Error("确认步之前不应允许提交")
	}
	if *calls != 0 {
		t.Errorf("提交前不应有创建调用, got %d", *calls)
	}

	w.SetBasicInfo(BasicInfo{ItemID: "item-001", Title: "键盘", Price: 10})
	w.Next()
	w.SetStrategy(model.ProductSettings{MaxDiscount: 0.9})
	w.Next()

	product, err := w.Submit(ctx)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if product == nil || product.ItemID != "item-001" {
		t.Fatalf("提交结果错误: %+v", product)
	}
	if *calls != 1 {
		t.Errorf("整个向导应只发起一次创建调用, got %d", *calls)
	}

	// 提交成功后向导复位
	if w.Step() != StepBasicInfo || w.BasicInfo().ItemID != "" {
		t.Error("提交成功后向导应回到初始状态")
	}
}
