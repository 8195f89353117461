package model

import (
	"time"

	"gorm.io/datatypes"
)

// XianyuItem 闲鱼侧商品（同步源）
type XianyuItem struct {
	ID            int64          `gorm:"primary_key;AUTO_INCREMENT" json:"-"`
	ItemID        string         `gorm:"size:100;uniqueIndex;not null" json:"itemId"`
	Title         string         `gorm:"size:255" json:"title"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"originalPrice,omitempty"`
	Status        string         `gorm:"size:20;index" json:"status"` // ON_SALE / SOLD_OUT
	PublishTime   time.Time      `json:"publishTime"`
	ViewCount     int            `json:"viewCount"`
	LikeCount     int            `json:"likeCount"`
	Images        datatypes.JSON `gorm:"type:json" json:"images"`
	Category      string         `gorm:"size:100" json:"category"`
	Location      string         `gorm:"size:100" json:"location"`
}

func (XianyuItem) TableName() string {
	return "xianyu_items"
}

// XianyuSyncResult 从闲鱼导入商品的结果
type XianyuSyncResult struct {
	SyncedItems []string `json:"syncedItems"`
	FailedItems []string `json:"failedItems"`
	SyncedCount int      `json:"syncedCount"`
	FailedCount int      `json:"failedCount"`
	Message     string   `json:"message"`
}

// CookieEntry 闲鱼登录凭证（cookie 键值对）
type CookieEntry struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"-"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Value     string    `gorm:"size:2000" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CookieEntry) TableName() string {
	return "cookie_entries"
}

// CookieConfigView 凭证配置视图（值脱敏后返回）
type CookieConfigView struct {
	HasCookies    bool              `json:"hasCookies"`
	CookiePreview map[string]string `json:"cookiePreview"`
	LastUpdated   *time.Time        `json:"lastUpdated"`
	Status        string            `json:"status"` // configured / not_configured
}

// CookieTestResult 凭证连通性测试结果
type CookieTestResult struct {
	Connected bool   `json:"connected"`
	Status    string `json:"status"` // valid / invalid / error
	Message   string `json:"message"`
	TestTime  string `json:"testTime"`
}
