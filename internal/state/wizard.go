package state

import (
	"context"
	"fmt"
	"strings"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
)

// WizardStep 创建向导步骤
type WizardStep int

const (
	StepBasicInfo WizardStep = iota // 基本信息
	StepStrategy                    // 销售策略
	StepConfirm                     // 确认提交
)

func (s WizardStep) String() string {
	switch s {
	case StepBasicInfo:
		return "基本信息"
	case StepStrategy:
		return "销售策略"
	case StepConfirm:
		return "确认提交"
	}
	return "未知"
}

// BasicInfo 第一步：基本信息
type BasicInfo struct {
	ItemID   string
	Title    string
	Desc     string
	Price    float64
	Category string
}

// ProductCreateWizard 三步创建向导。
// 数据只在客户端累积，最后一步才发起唯一一次创建调用，
// 中途不产生任何服务端写入。前进必须通过当前步校验，后退不设门槛。
type ProductCreateWizard struct {
	products *ProductStore

	step     WizardStep
	basic    BasicInfo
	strategy model.ProductSettings
}

func NewProductCreateWizard(products *ProductStore) *ProductCreateWizard {
	return &ProductCreateWizard{products: products}
}

// Step 当前步骤
func (w *ProductCreateWizard) Step() WizardStep {
	return w.step
}

// BasicInfo 已录入的基本信息
func (w *ProductCreateWizard) BasicInfo() BasicInfo {
	return w.basic
}

// Strategy 已录入的销售策略
func (w *ProductCreateWizard) Strategy() model.ProductSettings {
	return w.strategy
}

// ==================== 录入 ====================

// SetBasicInfo 录入第一步数据（不校验，校验发生在前进时）
func (w *ProductCreateWizard) SetBasicInfo(info BasicInfo) {
	w.basic = info
}

// SetStrategy 录入第二步数据
func (w *ProductCreateWizard) SetStrategy(settings model.ProductSettings) {
	w.strategy = settings
}

// ==================== 步进 ====================

// Next 前进一步，先过当前步校验
func (w *ProductCreateWizard) Next() error {
	switch w.step {
	case StepBasicInfo:
		if err := w.validateBasicInfo(); err != nil {
			return err
		}
		w.step = StepStrategy
	case StepStrategy:
		if err := w.validateStrategy(); err != nil {
			return err
		}
		w.step = StepConfirm
	case StepConfirm:
		return fmt.Errorf("已在最后一步，请提交")
	}
	return nil
}

// Back 后退一步，不做校验
func (w *ProductCreateWizard) Back() {
	if w.step > StepBasicInfo {
		w.step--
	}
}

// ==================== 校验 ====================

func (w *ProductCreateWizard) validateBasicInfo() error {
	if strings.TrimSpace(w.basic.ItemID) == "" {
		return fmt.Errorf("商品ID为必填项")
	}
	for _, r := range w.basic.ItemID {
		ok := r == '_' || r == '-' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !ok {
			return fmt.Errorf("商品ID只能包含字母、数字、下划线和横线")
		}
	}
	if strings.TrimSpace(w.basic.Title) == "" {
		return fmt.Errorf("商品标题为必填项")
	}
	if w.basic.Price < 0 {
		return fmt.Errorf("价格必须大于等于0")
	}
	return nil
}

func (w *ProductCreateWizard) validateStrategy() error {
	if w.strategy.MaxDiscount < 0 || w.strategy.MaxDiscount > 1 {
		return fmt.Errorf("最大折扣需在 0 到 1 之间")
	}
	switch w.strategy.UrgencyLevel {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("促销力度只能为 low / medium / high")
	}
	return nil
}

// ==================== 提交 ====================

// Submit 在确认步提交唯一一次创建调用
func (w *ProductCreateWizard) Submit(ctx context.Context) (*model.Product, error) {
	if w.step != StepConfirm {
		return nil, fmt.Errorf("尚未到确认步骤")
	}

	settings := w.strategy
	product, err := w.products.Create(ctx, client.ProductCreateReq{
		ItemID:   w.basic.ItemID,
		Title:    w.basic.Title,
		Desc:     w.basic.Desc,
		Price:    w.basic.Price,
		Category: w.basic.Category,
		Settings: &settings,
	})
	if err != nil {
		return nil, err
	}

	w.ResetWizard()
	return product, nil
}

// ResetWizard 清空录入数据并回到第一步
func (w *ProductCreateWizard) ResetWizard() {
	w.step = StepBasicInfo
	w.basic = BasicInfo{}
	w.strategy = model.ProductSettings{}
}
