package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/service"
)

type PromptController struct {
	promptService *service.PromptService
}

func NewPromptController(promptService *service.PromptService) *PromptController {
	return &PromptController{promptService: promptService}
}

// ==================== 商品提示词 ====================

// GetProductPrompts 商品四类提示词
// GET /api/products/:id/prompts
func (ctrl *PromptController) GetProductPrompts(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		Fail(c, 400, "无效的商品 ID")
		return
	}

	prompts, err := ctrl.promptService.GetProductPrompts(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "商品不存在")
			return
		}
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, prompts)
}

// UpdateProductPrompt 更新单个槽位
// PUT /api/products/:id/prompts
func (ctrl *PromptController) UpdateProductPrompt(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		Fail(c, 400, "无效的商品 ID")
		return
	}

	var req struct {
		Type    string `json:"type" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	prompts, err := ctrl.promptService.UpdateProductPrompt(c.Request.Context(), id, model.PromptType(req.Type), req.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "商品不存在")
			return
		}
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, prompts, "提示词已保存")
}

// BatchUpdateProductPrompts 整体覆盖四个槽位
// PUT /api/products/:id/prompts/batch
func (ctrl *PromptController) BatchUpdateProductPrompts(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		Fail(c, 400, "无效的商品 ID")
		return
	}

	var req model.ProductPrompts
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	prompts, err := ctrl.promptService.BatchUpdateProductPrompts(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "商品不存在")
			return
		}
		Fail(c, 500, "保存失败: "+err.Error())
		return
	}
	OKMessage(c, prompts, "提示词已保存")
}

// ApplyTemplate 把模板应用到商品
// POST /api/products/:id/apply-template
func (ctrl *PromptController) ApplyTemplate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		Fail(c, 400, "无效的商品 ID")
		return
	}

	var req struct {
		TemplateID string `json:"templateId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	prompts, err := ctrl.promptService.ApplyTemplate(c.Request.Context(), id, req.TemplateID)
	if err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, prompts, "模板已应用")
}

// ==================== 模板管理 ====================

// ListTemplates 模板列表
// GET /api/prompts/templates?type=
func (ctrl *PromptController) ListTemplates(c *gin.Context) {
	templates, err := ctrl.promptService.ListTemplates(c.Request.Context(), model.PromptType(c.Query("type")))
	if err != nil {
		Fail(c, 400, err.Error())
		return
	}
	if templates == nil {
		templates = []model.PromptTemplate{}
	}
	OK(c, templates)
}

// CreateTemplate 创建模板
// POST /api/prompts/templates
func (ctrl *PromptController) CreateTemplate(c *gin.Context) {
	var req service.TemplateCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	tpl, err := ctrl.promptService.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, tpl, "模板创建成功")
}

// UpdateTemplate 更新模板
// PUT /api/prompts/templates/:id
func (ctrl *PromptController) UpdateTemplate(c *gin.Context) {
	var req service.TemplateUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	tpl, err := ctrl.promptService.UpdateTemplate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "模板不存在")
			return
		}
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, tpl, "模板更新成功")
}

// DeleteTemplate 删除模板
// DELETE /api/prompts/templates/:id
func (ctrl *PromptController) DeleteTemplate(c *gin.Context) {
	if err := ctrl.promptService.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "模板不存在")
			return
		}
		Fail(c, 500, "删除失败: "+err.Error())
		return
	}
	OKMessage(c, nil, "模板已删除")
}

// ==================== 预览与校验 ====================

// Preview 渲染预览
// POST /api/prompts/preview
// productInfo 直接作为替换变量；productId 存在时先用商品字段打底
func (ctrl *PromptController) Preview(c *gin.Context) {
	var req struct {
		Content     string                 `json:"content" binding:"required"`
		ProductID   string                 `json:"productId"`
		ProductInfo map[string]interface{} `json:"productInfo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	var productID int64
	if req.ProductID != "" {
		id, err := strconv.ParseInt(req.ProductID, 10, 64)
		if err != nil {
			Fail(c, 400, "无效的商品 ID")
			return
		}
		productID = id
	}

	result, err := ctrl.promptService.Preview(c.Request.Context(), req.Content, productID, req.ProductInfo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "商品不存在")
			return
		}
		Fail(c, 500, "预览失败: "+err.Error())
		return
	}
	OK(c, result)
}

// Validate 模板校验
// POST /api/prompts/validate
func (ctrl *PromptController) Validate(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}
	OK(c, ctrl.promptService.Validate(req.Content))
}

// Variables 可用变量目录
// GET /api/prompts/variables
func (ctrl *PromptController) Variables(c *gin.Context) {
	OK(c, ctrl.promptService.Variables())
}
