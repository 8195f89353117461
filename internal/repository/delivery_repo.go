package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
)

// ErrStockDepleted 扣减时已无可用库存
var ErrStockDepleted = errors.New("库存已扣完")

// DeliveryRecordFilter 发货流水查询条件
type DeliveryRecordFilter struct {
	ItemID   string
	BuyerID  string
	Status   model.DeliveryResult
	Page     int
	PageSize int
}

// DeliveryRepository 发货配置与流水仓储接口
type DeliveryRepository interface {
	GetConfig(ctx context.Context, itemID string) (*model.DeliveryConfig, error)
	ListConfigs(ctx context.Context, enabledOnly bool) ([]model.DeliveryConfig, error)
	SaveConfig(ctx context.Context, config *model.DeliveryConfig) error
	DeleteConfig(ctx context.Context, itemID string) error
	DecrementStock(ctx context.Context, itemID string) error

	AddRecord(ctx context.Context, record *model.DeliveryRecord) error
	ListRecords(ctx context.Context, filter DeliveryRecordFilter) ([]model.DeliveryRecord, int64, error)
	Stats(ctx context.Context) (*model.DeliveryStats, error)
	DeleteRecordsBefore(ctx context.Context, days int) (int64, error)
}

type deliveryRepo struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) GetConfig(ctx context.Context, itemID string) (*model.DeliveryConfig, error) {
	var config model.DeliveryConfig
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&config).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *deliveryRepo) ListConfigs(ctx context.Context, enabledOnly bool) ([]model.DeliveryConfig, error) {
	query := r.db.WithContext(ctx).Model(&model.DeliveryConfig{})
	if enabledOnly {
		query = query.Where("is_enabled = ?", true)
	}
	var configs []model.DeliveryConfig
	err := query.Order("updated_at DESC").Find(&configs).Error
	return configs, err
}

// SaveConfig 按 item_id upsert：已存在则更新原记录
func (r *deliveryRepo) SaveConfig(ctx context.Context, config *model.DeliveryConfig) error {
	var existing model.DeliveryConfig
	err := r.db.WithContext(ctx).Where("item_id = ?", config.ItemID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(config).Error
	}
	if err != nil {
		return err
	}
	config.ID = existing.ID
	config.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(config).Error
}

func (r *deliveryRepo) DeleteConfig(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.DeliveryConfig{}).Error
}

// DecrementStock 扣减有限库存，-1（不限库存）不受影响
// 条件更新兜并发：没扣到行说明库存已被别的发货扣完，返回 ErrStockDepleted
func (r *deliveryRepo) DecrementStock(ctx context.Context, itemID string) error {
	result := r.db.WithContext(ctx).Model(&model.DeliveryConfig{}).
		Where("item_id = ? AND stock_count > 0", itemID).
		Update("stock_count", gorm.Expr("stock_count - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockDepleted
	}
	return nil
}

func (r *deliveryRepo) AddRecord(ctx context.Context, record *model.DeliveryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *deliveryRepo) ListRecords(ctx context.Context, filter DeliveryRecordFilter) ([]model.DeliveryRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.DeliveryRecord{})
	if filter.ItemID != "" {
		query = query.Where("item_id = ?", filter.ItemID)
	}
	if filter.BuyerID != "" {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var records []model.DeliveryRecord
	err := query.Order("delivery_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	return records, total, err
}

func (r *deliveryRepo) Stats(ctx context.Context) (*model.DeliveryStats, error) {
	var stats model.DeliveryStats

	if err := r.db.WithContext(ctx).Model(&model.DeliveryConfig{}).Count(&stats.TotalConfigs).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.DeliveryConfig{}).
		Where("is_enabled = ?", true).Count(&stats.EnabledConfigs).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.DeliveryRecord{}).Count(&stats.TotalDeliveries).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.DeliveryRecord{}).
		Where("status = ?", model.DeliverySuccess).Count(&stats.SuccessDeliveries).Error; err != nil {
		return nil, err
	}
	if stats.TotalDeliveries > 0 {
		stats.SuccessRate = float64(stats.SuccessDeliveries) / float64(stats.TotalDeliveries) * 100
	}
	return &stats, nil
}

// DeleteRecordsBefore 清理 N 天前的发货流水，返回删除条数
func (r *deliveryRepo) DeleteRecordsBefore(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.WithContext(ctx).
		Where("delivery_time < ?", cutoff).
		Delete(&model.DeliveryRecord{})
	return result.RowsAffected, result.Error
}
