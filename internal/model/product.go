package model

import (
	"time"

	"gorm.io/datatypes"
)

// Product 本地商品（从闲鱼同步或手工创建）
type Product struct {
	BaseModel

	// --- 闲鱼侧身份字段 ---
	// ItemID 是闲鱼侧唯一键，创建后不可修改
	ItemID string `gorm:"size:100;uniqueIndex;not null" json:"itemId"`

	// --- 商品基本信息 ---
	Title    string `gorm:"size:255;index" json:"title"`
	Desc     string `gorm:"type:text" json:"desc"`
	Category string `gorm:"size:100;index" json:"category"`

	// --- 价格 ---
	Price     float64 `gorm:"default:0" json:"price"`     // 当前售价
	SoldPrice float64 `gorm:"default:0" json:"soldPrice"` // 原价/划线价

	// --- 状态 ---
	Status     ProductStatus     `gorm:"size:20;index;default:'draft'" json:"status"`
	SyncStatus ProductSyncStatus `gorm:"size:20;index;default:'pending'" json:"syncStatus"`

	// --- AI 提示词 ---
	// 四个槽位统一存 JSON，读取时保证四键恒全
	HasCustomPrompts bool           `gorm:"default:false" json:"hasCustomPrompts"`
	Prompts          datatypes.JSON `gorm:"type:json" json:"-"`

	// --- 销售策略（创建向导第二步） ---
	Settings datatypes.JSON `gorm:"type:json" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ProductPrompts 商品的四类提示词，键恒定存在（未设置为空串）
type ProductPrompts struct {
	Price    string `json:"price"`
	Tech     string `json:"tech"`
	Default  string `json:"default"`
	Classify string `json:"classify"`
}

// Get 按类型取值
func (p ProductPrompts) Get(t PromptType) string {
	switch t {
	case PromptTypePrice:
		return p.Price
	case PromptTypeTech:
		return p.Tech
	case PromptTypeDefault:
		return p.Default
	case PromptTypeClassify:
		return p.Classify
	}
	return ""
}

// Set 按类型写值
func (p *ProductPrompts) Set(t PromptType, content string) {
	switch t {
	case PromptTypePrice:
		p.Price = content
	case PromptTypeTech:
		p.Tech = content
	case PromptTypeDefault:
		p.Default = content
	case PromptTypeClassify:
		p.Classify = content
	}
}

// HasAny 是否存在任一非空提示词
func (p ProductPrompts) HasAny() bool {
	for _, t := range AllPromptTypes {
		if p.Get(t) != "" {
			return true
		}
	}
	return false
}

// ProductSettings 销售策略配置
type ProductSettings struct {
	MaxDiscount     float64  `json:"maxDiscount"`     // 最大折扣（0-1）
	SellingPoints   []string `json:"sellingPoints"`   // 卖点
	TargetCustomers string   `json:"targetCustomers"` // 目标人群
	UrgencyLevel    string   `json:"urgencyLevel"`    // low / medium / high
}

// PromptTemplate 可复用提示词模板，独立于商品生命周期
// 应用到商品时按 copy-on-write 复制内容
type PromptTemplate struct {
	ID        string     `gorm:"size:64;primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Type      PromptType `gorm:"size:20;index" json:"type"`
	Content   string     `gorm:"type:text" json:"content"`
	Desc      string     `gorm:"size:255" json:"description,omitempty"`
	IsDefault bool       `gorm:"default:false" json:"isDefault"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (PromptTemplate) TableName() string {
	return "prompt_templates"
}
