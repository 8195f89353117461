package model

import "time"

// SysUser 管理台账号
type SysUser struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Email    string `gorm:"size:100" json:"email,omitempty"`

	// 系统级角色: super_admin / admin / user
	Role string `gorm:"size:20;default:'admin'" json:"role"`

	IsActive bool `gorm:"default:true" json:"-"`
}

func (SysUser) TableName() string {
	return "sys_users"
}

// UserView 登录态里持有的用户快照（客户端本地存储的就是它）
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SystemStats 控制台首页统计卡片数据
type SystemStats struct {
	TotalProducts  int64   `json:"totalProducts"`
	TotalValue     float64 `json:"totalValue"`
	AiConfigRate   float64 `json:"aiConfigRate"` // 配置了自定义提示词的商品占比（百分比）
	TodaySyncCount int64   `json:"todaySyncCount"`
	ActiveProducts int64   `json:"activeProducts"`
	ErrorCount     int64   `json:"errorCount"`
}

// NotificationMessage 系统通知
type NotificationMessage struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	Title     string    `gorm:"size:200" json:"title"`
	Content   string    `gorm:"size:1000" json:"content"`
	Type      string    `gorm:"size:20" json:"type"` // info / success / warning / error
	Read      bool      `gorm:"default:false" json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

func (NotificationMessage) TableName() string {
	return "notifications"
}
