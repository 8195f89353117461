package model

import "time"

// SyncRun 一次同步任务的运行记录
type SyncRun struct {
	ID            string        `gorm:"size:64;primaryKey" json:"id"`
	Status        SyncRunStatus `gorm:"size:20;index" json:"status"`
	Progress      int           `gorm:"default:0" json:"progress"` // 0-100
	Message       string        `gorm:"size:255" json:"message,omitempty"`
	AffectedItems int           `gorm:"default:0" json:"affectedItems"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       *time.Time    `json:"endTime,omitempty"`
	// RetryOf 重试来源任务 ID（重试产生新任务，旧的失败记录保留在历史里）
	RetryOf string `gorm:"size:64;index" json:"-"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

// SyncLogLevel 同步日志级别
type SyncLogLevel string

const (
	SyncLogInfo    SyncLogLevel = "info"
	SyncLogWarning SyncLogLevel = "warning"
	SyncLogError   SyncLogLevel = "error"
)

// SyncLog 同步过程日志，按任务分组
type SyncLog struct {
	ID        int64        `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	RunID     string       `gorm:"size:64;index;not null" json:"-"`
	Level     SyncLogLevel `gorm:"size:10" json:"level"`
	Message   string       `gorm:"size:500" json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}

func (SyncLog) TableName() string {
	return "sync_logs"
}

// AutoSyncSettings 自动同步配置（全局单行）
type AutoSyncSettings struct {
	ID       int64      `gorm:"primary_key" json:"-"`
	Enabled  bool       `gorm:"default:false" json:"enabled"`
	Interval int        `gorm:"default:60" json:"interval"` // 分钟
	LastSync *time.Time `json:"lastSync,omitempty"`
	NextSync *time.Time `json:"nextSync,omitempty"`
}

func (AutoSyncSettings) TableName() string {
	return "auto_sync_settings"
}

// ConnectionTestResult 后端连通性测试结果
type ConnectionTestResult struct {
	Connected bool   `json:"connected"`
	Latency   int64  `json:"latency"` // 毫秒
	Version   string `json:"version"`
	Message   string `json:"message"`
}
