package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/pkg/prompt"
)

type PromptService struct {
	productRepo  repository.ProductRepository
	templateRepo repository.TemplateRepository
}

// NewPromptService 工厂方法
func NewPromptService(productRepo repository.ProductRepository, templateRepo repository.TemplateRepository) *PromptService {
	return &PromptService{
		productRepo:  productRepo,
		templateRepo: templateRepo,
	}
}

// ==================== 商品提示词 ====================

// GetProductPrompts 读取商品的四类提示词，四键恒全
func (s *PromptService) GetProductPrompts(ctx context.Context, productID int64) (*model.ProductPrompts, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var prompts model.ProductPrompts
	if len(product.Prompts) > 0 {
		_ = json.Unmarshal(product.Prompts, &prompts)
	}
	return &prompts, nil
}

// UpdateProductPrompt 更新单个槽位，并联动 hasCustomPrompts
func (s *PromptService) UpdateProductPrompt(ctx context.Context, productID int64, promptType model.PromptType, content string) (*model.ProductPrompts, error) {
	if !promptType.Valid() {
		return nil, fmt.Errorf("无效的提示词类型: %s", promptType)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var prompts model.ProductPrompts
	if len(product.Prompts) > 0 {
		_ = json.Unmarshal(product.Prompts, &prompts)
	}
	prompts.Set(promptType, content)

	if err := s.savePrompts(ctx, productID, &prompts); err != nil {
		return nil, err
	}
	return &prompts, nil
}

// BatchUpdateProductPrompts 整体覆盖四个槽位
func (s *PromptService) BatchUpdateProductPrompts(ctx context.Context, productID int64, prompts *model.ProductPrompts) (*model.ProductPrompts, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.savePrompts(ctx, productID, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (s *PromptService) savePrompts(ctx context.Context, productID int64, prompts *model.ProductPrompts) error {
	raw, err := json.Marshal(prompts)
	if err != nil {
		return fmt.Errorf("序列化提示词失败: %w", err)
	}
	return s.productRepo.UpdateFields(ctx, productID, map[string]interface{}{
		"prompts":            raw,
		"has_custom_prompts": prompts.HasAny(),
	})
}

// ==================== 模板 ====================

// TemplateCreateReq 创建模板请求
type TemplateCreateReq struct {
	Name      string           `json:"name" binding:"required"`
	Type      model.PromptType `json:"type" binding:"required"`
	Content   string           `json:"content" binding:"required"`
	Desc      string           `json:"description"`
	IsDefault bool             `json:"isDefault"`
}

// ListTemplates 查询模板，可按类型过滤
func (s *PromptService) ListTemplates(ctx context.Context, promptType model.PromptType) ([]model.PromptTemplate, error) {
	if promptType != "" && !promptType.Valid() {
		return nil, fmt.Errorf("无效的提示词类型: %s", promptType)
	}
	return s.templateRepo.List(ctx, promptType)
}

// CreateTemplate 创建模板
func (s *PromptService) CreateTemplate(ctx context.Context, req *TemplateCreateReq) (*model.PromptTemplate, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("无效的提示词类型: %s", req.Type)
	}
	if req.Content == "" {
		return nil, errors.New("模板内容不能为空")
	}

	tpl := &model.PromptTemplate{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Type:      req.Type,
		Content:   req.Content,
		Desc:      req.Desc,
		IsDefault: req.IsDefault,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("创建模板失败: %w", err)
	}
	return tpl, nil
}

// TemplateUpdateReq 更新模板请求，字段均可选
type TemplateUpdateReq struct {
	Name      string           `json:"name"`
	Type      model.PromptType `json:"type"`
	Content   string           `json:"content"`
	Desc      string           `json:"description"`
	IsDefault *bool            `json:"isDefault"`
}

// UpdateTemplate 更新模板
// 模板更新不回写已应用的商品（copy-on-write）
func (s *PromptService) UpdateTemplate(ctx context.Context, id string, req *TemplateUpdateReq) (*model.PromptTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		tpl.Name = req.Name
	}
	if req.Type != "" {
		if !req.Type.Valid() {
			return nil, fmt.Errorf("无效的提示词类型: %s", req.Type)
		}
		tpl.Type = req.Type
	}
	if req.Content != "" {
		tpl.Content = req.Content
	}
	if req.Desc != "" {
		tpl.Desc = req.Desc
	}
	if req.IsDefault != nil {
		tpl.IsDefault = *req.IsDefault
	}
	tpl.UpdatedAt = time.Now()

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, fmt.Errorf("更新模板失败: %w", err)
	}
	return tpl, nil
}

// DeleteTemplate 删除模板，不影响已应用的商品
func (s *PromptService) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.templateRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}

// ApplyTemplate 把模板内容复制到商品对应槽位
// 复制后商品与模板脱钩，后续模板修改不再影响商品
func (s *PromptService) ApplyTemplate(ctx context.Context, productID int64, templateID string) (*model.ProductPrompts, error) {
	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("模板不存在: %w", err)
	}
	return s.UpdateProductPrompt(ctx, productID, tpl.Type, tpl.Content)
}

// ==================== 预览与校验 ====================

// Preview 用商品字段渲染提示词模板
// productID 为 0 时仅用调用方传入的变量渲染
func (s *PromptService) Preview(ctx context.Context, template string, productID int64, extra map[string]interface{}) (*prompt.PreviewResult, error) {
	variables := make(map[string]interface{})

	if productID > 0 {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		variables["title"] = product.Title
		variables["desc"] = product.Desc
		variables["price"] = product.Price
		variables["itemId"] = product.ItemID
		variables["category"] = product.Category
	}
	for key, value := range extra {
		variables[key] = value
	}

	result := prompt.Render(template, variables)
	return &result, nil
}

// Validate 校验模板内容
func (s *PromptService) Validate(template string) prompt.ValidationResult {
	return prompt.Validate(template)
}

// Variables 可用变量目录
func (s *PromptService) Variables() []prompt.Variable {
	return prompt.KnownVariables
}
