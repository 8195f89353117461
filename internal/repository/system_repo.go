package repository

import (
	"context"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
)

// NotificationRepository 系统通知仓储接口
type NotificationRepository interface {
	Add(ctx context.Context, msg *model.NotificationMessage) error
	List(ctx context.Context, page, pageSize int) ([]model.NotificationMessage, int64, int64, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Add(ctx context.Context, msg *model.NotificationMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// List 返回通知列表、总数、未读数
func (r *notificationRepo) List(ctx context.Context, page, pageSize int) ([]model.NotificationMessage, int64, int64, error) {
	var total, unread int64
	if err := r.db.WithContext(ctx).Model(&model.NotificationMessage{}).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.NotificationMessage{}).
		Where("read = ?", false).Count(&unread).Error; err != nil {
		return nil, 0, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var messages []model.NotificationMessage
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&messages).Error
	return messages, total, unread, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.NotificationMessage{}).
		Where("id = ?", id).
		Update("read", true).Error
}

// ==================== 闲鱼侧数据 ====================

// XianyuRepository 闲鱼商品与登录凭证仓储接口
type XianyuRepository interface {
	ListItems(ctx context.Context, status string, page, pageSize int) ([]model.XianyuItem, int64, error)
	GetItem(ctx context.Context, itemID string) (*model.XianyuItem, error)
	SaveItem(ctx context.Context, item *model.XianyuItem) error

	ListCookies(ctx context.Context) ([]model.CookieEntry, error)
	ReplaceCookies(ctx context.Context, entries []model.CookieEntry) error
}

type xianyuRepo struct {
	db *gorm.DB
}

func NewXianyuRepository(db *gorm.DB) XianyuRepository {
	return &xianyuRepo{db: db}
}

func (r *xianyuRepo) ListItems(ctx context.Context, status string, page, pageSize int) ([]model.XianyuItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.XianyuItem{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var items []model.XianyuItem
	err := query.Order("publish_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *xianyuRepo) GetItem(ctx context.Context, itemID string) (*model.XianyuItem, error) {
	var item model.XianyuItem
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *xianyuRepo) SaveItem(ctx context.Context, item *model.XianyuItem) error {
	var existing model.XianyuItem
	err := r.db.WithContext(ctx).Where("item_id = ?", item.ItemID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(item).Error
	}
	if err != nil {
		return err
	}
	item.ID = existing.ID
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *xianyuRepo) ListCookies(ctx context.Context) ([]model.CookieEntry, error) {
	var entries []model.CookieEntry
	err := r.db.WithContext(ctx).Order("name").Find(&entries).Error
	return entries, err
}

// ReplaceCookies 整体替换凭证，事务内先清后写
func (r *xianyuRepo) ReplaceCookies(ctx context.Context, entries []model.CookieEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.CookieEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}
