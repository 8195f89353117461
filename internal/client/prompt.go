package client

import (
	"context"
	"fmt"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/pkg/prompt"
)

// ==================== 提示词接口 ====================

// GetProductPrompts 获取商品的四类提示词（四键恒全）
func (c *Client) GetProductPrompts(ctx context.Context, productID string) (*model.ProductPrompts, error) {
	resp, err := c.Get(ctx, "/api/products/"+productID+"/prompts", nil)
	if err != nil {
		return nil, err
	}
	var prompts model.ProductPrompts
	if err := resp.Decode(&prompts); err != nil {
		return nil, err
	}
	return &prompts, nil
}

// UpdateProductPrompt 更新单个槽位
func (c *Client) UpdateProductPrompt(ctx context.Context, productID string, t model.PromptType, content string) error {
	if !t.Valid() {
		return fmt.Errorf("非法的提示词类型: %s", t)
	}
	_, err := c.Put(ctx, "/api/products/"+productID+"/prompts", map[string]string{
		"type":    string(t),
		"content": content,
	})
	return err
}

// BatchUpdateProductPrompts 一次写入多个槽位
func (c *Client) BatchUpdateProductPrompts(ctx context.Context, productID string, prompts map[model.PromptType]string) error {
	body := make(map[string]string, len(prompts))
	for t, content := range prompts {
		if !t.Valid() {
			return fmt.Errorf("非法的提示词类型: %s", t)
		}
		body[string(t)] = content
	}
	_, err := c.Put(ctx, "/api/products/"+productID+"/prompts/batch", body)
	return err
}

// PreviewPrompt 服务端渲染预览
func (c *Client) PreviewPrompt(ctx context.Context, content string, productInfo map[string]interface{}) (*prompt.PreviewResult, error) {
	resp, err := c.Post(ctx, "/api/prompts/preview", map[string]interface{}{
		"content":     content,
		"productInfo": productInfo,
	})
	if err != nil {
		return nil, err
	}
	var result prompt.PreviewResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidatePrompt 服务端校验模板
func (c *Client) ValidatePrompt(ctx context.Context, content string) (*prompt.ValidationResult, error) {
	resp, err := c.Post(ctx, "/api/prompts/validate", map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	var result prompt.ValidationResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PromptVariables 可用变量目录
func (c *Client) PromptVariables(ctx context.Context) ([]prompt.Variable, error) {
	resp, err := c.Get(ctx, "/api/prompts/variables", nil)
	if err != nil {
		return nil, err
	}
	var variables []prompt.Variable
	if err := resp.Decode(&variables); err != nil {
		return nil, err
	}
	return variables, nil
}

// ==================== 模板接口 ====================

// PromptTemplates 模板列表，type 为空时返回全部
func (c *Client) PromptTemplates(ctx context.Context, t model.PromptType) ([]model.PromptTemplate, error) {
	var query map[string]string
	if t != "" {
		query = map[string]string{"type": string(t)}
	}
	resp, err := c.Get(ctx, "/api/prompts/templates", query)
	if err != nil {
		return nil, err
	}
	var templates []model.PromptTemplate
	if err := resp.Decode(&templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// TemplateCreateReq 创建模板请求
type TemplateCreateReq struct {
	Name    string           `json:"name"`
	Type    model.PromptType `json:"type"`
	Content string           `json:"content"`
	Desc    string           `json:"description,omitempty"`
}

// CreatePromptTemplate 创建模板
func (c *Client) CreatePromptTemplate(ctx context.Context, req TemplateCreateReq) (*model.PromptTemplate, error) {
	resp, err := c.Post(ctx, "/api/prompts/templates", req)
	if err != nil {
		return nil, err
	}
	var tpl model.PromptTemplate
	if err := resp.Decode(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// UpdatePromptTemplate 更新模板
func (c *Client) UpdatePromptTemplate(ctx context.Context, id string, fields map[string]interface{}) (*model.PromptTemplate, error) {
	resp, err := c.Put(ctx, "/api/prompts/templates/"+id, fields)
	if err != nil {
		return nil, err
	}
	var tpl model.PromptTemplate
	if err := resp.Decode(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// DeletePromptTemplate 删除模板
func (c *Client) DeletePromptTemplate(ctx context.Context, id string) error {
	_, err := c.Del(ctx, "/api/prompts/templates/"+id)
	return err
}

// ApplyTemplate 把模板内容按 copy-on-write 复制进商品槽位
func (c *Client) ApplyTemplate(ctx context.Context, productID, templateID string, t model.PromptType) error {
	_, err := c.Post(ctx, "/api/products/"+productID+"/apply-template", map[string]string{
		"templateId": templateID,
		"type":       string(t),
	})
	return err
}
