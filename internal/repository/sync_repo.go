package repository

import (
	"context"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
)

// SyncRepository 同步运行记录与日志仓储接口
type SyncRepository interface {
	CreateRun(ctx context.Context, run *model.SyncRun) error
	GetRun(ctx context.Context, id string) (*model.SyncRun, error)
	UpdateRun(ctx context.Context, run *model.SyncRun) error
	LatestRun(ctx context.Context) (*model.SyncRun, error)
	ListRuns(ctx context.Context, page, pageSize int) ([]model.SyncRun, int64, error)

	AddLog(ctx context.Context, log *model.SyncLog) error
	ListLogs(ctx context.Context, syncID string, level string, limit int) ([]model.SyncLog, error)

	GetSettings(ctx context.Context) (*model.AutoSyncSettings, error)
	SaveSettings(ctx context.Context, settings *model.AutoSyncSettings) error
}

type syncRepo struct {
	db *gorm.DB
}

func NewSyncRepository(db *gorm.DB) SyncRepository {
	return &syncRepo{db: db}
}

func (r *syncRepo) CreateRun(ctx context.Context, run *model.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *syncRepo) GetRun(ctx context.Context, id string) (*model.SyncRun, error) {
	var run model.SyncRun
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *syncRepo) UpdateRun(ctx context.Context, run *model.SyncRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *syncRepo) LatestRun(ctx context.Context) (*model.SyncRun, error) {
	var run model.SyncRun
	err := r.db.WithContext(ctx).Order("start_time DESC").First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *syncRepo) ListRuns(ctx context.Context, page, pageSize int) ([]model.SyncRun, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.SyncRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var runs []model.SyncRun
	err := r.db.WithContext(ctx).
		Order("start_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&runs).Error
	return runs, total, err
}

func (r *syncRepo) AddLog(ctx context.Context, log *model.SyncLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *syncRepo) ListLogs(ctx context.Context, syncID string, level string, limit int) ([]model.SyncLog, error) {
	query := r.db.WithContext(ctx).Model(&model.SyncLog{})
	if syncID != "" {
		query = query.Where("run_id = ?", syncID)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if limit <= 0 {
		limit = 100
	}
	var logs []model.SyncLog
	err := query.Order("timestamp DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// GetSettings 自动同步配置为单行记录，不存在时返回默认值
func (r *syncRepo) GetSettings(ctx context.Context) (*model.AutoSyncSettings, error) {
	var settings model.AutoSyncSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		return &model.AutoSyncSettings{Enabled: false, Interval: 60}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *syncRepo) SaveSettings(ctx context.Context, settings *model.AutoSyncSettings) error {
	var existing model.AutoSyncSettings
	err := r.db.WithContext(ctx).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	return r.db.WithContext(ctx).Save(settings).Error
}
