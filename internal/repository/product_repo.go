package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"xianyu_admin_v1_202509/internal/model"
)

// ==================== 接口定义 ====================

// ProductFilter 商品列表过滤条件
type ProductFilter struct {
	Keyword  string
	Category string
	Status   model.ProductStatus
	Page     int
	PageSize int
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByItemID(ctx context.Context, itemID string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	BatchDelete(ctx context.Context, ids []int64) error
	BatchUpdateStatus(ctx context.Context, ids []int64, status model.ProductStatus) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	UpsertByItemID(ctx context.Context, product *model.Product) error

	// 统计
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.ProductStatus) (int64, error)
	CountWithCustomPrompts(ctx context.Context) (int64, error)
	CountBySyncStatus(ctx context.Context, status model.ProductSyncStatus) (int64, error)
	SumPrice(ctx context.Context) (float64, error)
}

// ==================== GORM 实现 ====================

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetByItemID(ctx context.Context, itemID string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) BatchDelete(ctx context.Context, ids []int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, ids).Error
}

func (r *productRepo) BatchUpdateStatus(ctx context.Context, ids []int64, status model.ProductStatus) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR item_id LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
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

	var products []model.Product
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// UpsertByItemID 按 item_id 冲突时更新同步来源字段
func (r *productRepo) UpsertByItemID(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "desc", "category", "price", "sold_price", "status", "sync_status", "updated_at",
		}),
	}).Create(product).Error
}

// ==================== 统计 ====================

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountByStatus(ctx context.Context, status model.ProductStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *productRepo) CountWithCustomPrompts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("has_custom_prompts = ?", true).Count(&count).Error
	return count, err
}

func (r *productRepo) CountBySyncStatus(ctx context.Context, status model.ProductSyncStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("sync_status = ?", status).Count(&count).Error
	return count, err
}

func (r *productRepo) SumPrice(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("COALESCE(SUM(price), 0)").Scan(&sum).Error
	return sum, err
}
