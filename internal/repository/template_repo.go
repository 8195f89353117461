package repository

import (
	"context"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
)

// TemplateRepository 提示词模板仓储接口
type TemplateRepository interface {
	Create(ctx context.Context, tpl *model.PromptTemplate) error
	GetByID(ctx context.Context, id string) (*model.PromptTemplate, error)
	Update(ctx context.Context, tpl *model.PromptTemplate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, promptType model.PromptType) ([]model.PromptTemplate, error)
	DefaultByType(ctx context.Context, promptType model.PromptType) (*model.PromptTemplate, error)
}

type templateRepo struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, tpl *model.PromptTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*model.PromptTemplate, error) {
	var tpl model.PromptTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *templateRepo) Update(ctx context.Context, tpl *model.PromptTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PromptTemplate{}).Error
}

func (r *templateRepo) List(ctx context.Context, promptType model.PromptType) ([]model.PromptTemplate, error) {
	query := r.db.WithContext(ctx).Model(&model.PromptTemplate{})
	if promptType != "" {
		query = query.Where("type = ?", promptType)
	}
	var templates []model.PromptTemplate
	err := query.Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *templateRepo) DefaultByType(ctx context.Context, promptType model.PromptType) (*model.PromptTemplate, error) {
	var tpl model.PromptTemplate
	err := r.db.WithContext(ctx).
		Where("type = ? AND is_default = ?", promptType, true).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
