package state

import (
	"context"
	"sync"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/notify"
	"xianyu_admin_v1_202509/pkg/prompt"
)

// PromptStore 提示词编辑器状态容器
type PromptStore struct {
	client   *client.Client
	notifier notify.Notifier

	guard loadingGuard

	mu        sync.Mutex
	productID string
	prompts   model.ProductPrompts
	templates []model.PromptTemplate
	preview   *prompt.PreviewResult
}

func NewPromptStore(c *client.Client, notifier notify.Notifier) *PromptStore {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &PromptStore{client: c, notifier: notifier}
}

// ==================== 快照 ====================

func (s *PromptStore) Loading() bool { return s.guard.isLoading() }

func (s *PromptStore) Prompts() model.ProductPrompts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompts
}

func (s *PromptStore) Templates() []model.PromptTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PromptTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *PromptStore) Preview() *prompt.PreviewResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// ==================== 动作 ====================

// FetchPrompts 拉取指定商品的四类提示词
func (s *PromptStore) FetchPrompts(ctx context.Context, productID string) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	prompts, err := s.client.GetProductPrompts(ctx, productID)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取提示词失败")
		return err
	}

	s.mu.Lock()
	s.productID = productID
	s.prompts = *prompts
	s.mu.Unlock()
	return nil
}

// SavePrompt 保存单个槽位并回读
func (s *PromptStore) SavePrompt(ctx context.Context, t model.PromptType, content string) error {
	s.mu.Lock()
	productID := s.productID
	s.mu.Unlock()
	if productID == "" {
		return nil
	}

	if !s.guard.begin() {
		return nil
	}

	err := s.client.UpdateProductPrompt(ctx, productID, t, content)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "提示词保存失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "提示词更新成功")
	return s.FetchPrompts(ctx, productID)
}

// FetchTemplates 拉取模板列表
func (s *PromptStore) FetchTemplates(ctx context.Context, t model.PromptType) error {
	templates, err := s.client.PromptTemplates(ctx, t)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取模板列表失败")
		return err
	}

	s.mu.Lock()
	s.templates = templates
	s.mu.Unlock()
	return nil
}

// ApplyTemplate 应用模板到当前商品并回读提示词
func (s *PromptStore) ApplyTemplate(ctx context.Context, templateID string, t model.PromptType) error {
	s.mu.Lock()
	productID := s.productID
	s.mu.Unlock()
	if productID == "" {
		return nil
	}

	if err := s.client.ApplyTemplate(ctx, productID, templateID, t); err != nil {
		s.notifier.Notify(notify.LevelError, "应用模板失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "模板已应用")
	return s.FetchPrompts(ctx, productID)
}

// FetchPreview 服务端渲染预览
func (s *PromptStore) FetchPreview(ctx context.Context, content string, productInfo map[string]interface{}) error {
	result, err := s.client.PreviewPrompt(ctx, content, productInfo)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "预览生成失败")
		return err
	}

	s.mu.Lock()
	s.preview = result
	s.mu.Unlock()
	return nil
}

// Reset 恢复初始状态
func (s *PromptStore) Reset() {
	s.mu.Lock()
	s.productID = ""
	s.prompts = model.ProductPrompts{}
	s.templates = nil
	s.preview = nil
	s.mu.Unlock()
}
