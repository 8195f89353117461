package model

import "time"

// DeliveryConfig 单个商品的自动发货配置，与 ItemID 一对一
// 首次保存即创建，删除需显式操作
type DeliveryConfig struct {
	ID             int64        `gorm:"primary_key;AUTO_INCREMENT" json:"-"`
	ItemID         string       `gorm:"size:100;uniqueIndex;not null" json:"item_id"`
	DeliveryType   DeliveryType `gorm:"size:20;not null" json:"delivery_type"`
	Content        string       `gorm:"type:text" json:"delivery_content"`
	ExtractionCode string       `gorm:"size:50" json:"extraction_code,omitempty"`
	CustomMessage  string       `gorm:"size:500" json:"custom_message,omitempty"`
	// 不挂库级 default：gorm 建表默认值会在 Create 时吃掉零值字段，
	// 停用（false）与零库存（0）必须原样落库，默认值由服务层补
	IsEnabled bool `json:"is_enabled"`
	// StockCount 为 -1 表示不限库存；有限库存由发货侧扣减
	StockCount int       `json:"stock_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (DeliveryConfig) TableName() string {
	return "delivery_configs"
}

// DeliveryRecord 发货流水，只追加、写入后不可变
type DeliveryRecord struct {
	ID           int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OrderID      string         `gorm:"size:100;index" json:"order_id,omitempty"`
	ItemID       string         `gorm:"size:100;index;not null" json:"item_id"`
	BuyerID      string         `gorm:"size:100;index" json:"buyer_id"`
	ChatID       string         `gorm:"size:100" json:"chat_id"`
	DeliveryType string         `gorm:"size:20" json:"delivery_type"`
	Content      string         `gorm:"type:text" json:"delivery_content"`
	Status       DeliveryResult `gorm:"size:10;index" json:"status"`
	ErrorMessage string         `gorm:"size:500" json:"error_message,omitempty"`
	DeliveryTime time.Time      `json:"delivery_time"`
}

func (DeliveryRecord) TableName() string {
	return "delivery_records"
}

// DeliveryStats 发货统计
type DeliveryStats struct {
	TotalConfigs      int64   `json:"total_configs"`
	EnabledConfigs    int64   `json:"enabled_configs"`
	TotalDeliveries   int64   `json:"total_deliveries"`
	SuccessDeliveries int64   `json:"success_deliveries"`
	SuccessRate       float64 `json:"success_rate"`
}
