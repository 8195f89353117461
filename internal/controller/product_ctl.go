package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// List 商品列表
// GET /api/products?page=&pageSize=&keyword=&category=&status=
func (ctrl *ProductController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := repository.ProductFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Status:   model.ProductStatus(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		Fail(c, 400, "无效的商品状态: "+string(filter.Status))
		return
	}

	products, total, err := ctrl.productService.List(c.Request.Context(), filter)
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}

	OK(c, gin.H{
		"list":     products,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// Get 商品详情
// GET /api/products/:id
func (ctrl *ProductController) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		Fail(c, 400, "无效的商品 ID")
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "商品不存在")
			return
		}
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, product)
}

// Stats 商品统计
// GET /api/products/stats
func (ctrl *ProductController) Stats(c *gin.Context) {
	stats, err := ctrl.productService.Stats(c.Request.Context())
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, stats)
}

// Categories 分类列表
// GET /api/products/categories
func (ctrl *ProductController) Categories(c *gin.Context) {
	categories, err := ctrl.productService.Categories(c.Request.Context())
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	if categories == nil {
		categories = []string{}
	}
	OK(c, categories)
}

// ==================== 写入接口 ====================

// Create 创建商品
// POST /api/products
func (ctrl *ProductController) Create(c *gin.Context) {
	var req service.ProductCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, product, "商品创建成功")
}

// Update 部分更新商品
// PUT /api/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		Fail(c, 400, "无效的商品 ID")
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "商品不存在")
			return
		}
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, product, "商品更新成功")
}

// Delete 删除商品
// DELETE /api/products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		Fail(c, 400, "无效的商品 ID")
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "商品不存在")
			return
		}
		Fail(c, 500, "删除失败: "+err.Error())
		return
	}
	OKMessage(c, nil, "商品已删除")
}

// BatchDelete 批量删除
// POST /api/products/batch-delete
func (ctrl *ProductController) BatchDelete(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		Fail(c, 400, "存在无效的商品 ID")
		return
	}

	if err := ctrl.productService.BatchDelete(c.Request.Context(), ids); err != nil {
		Fail(c, 500, "批量删除失败: "+err.Error())
		return
	}
	OKMessage(c, nil, "批量删除成功")
}

// BatchUpdateStatus 批量上下架
// POST /api/products/batch-update-status
func (ctrl *ProductController) BatchUpdateStatus(c *gin.Context) {
	var req struct {
		IDs    []string `json:"ids" binding:"required"`
		Status string   `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		Fail(c, 400, "存在无效的商品 ID")
		return
	}

	if err := ctrl.productService.BatchUpdateStatus(c.Request.Context(), ids, model.ProductStatus(req.Status)); err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, nil, "状态更新成功")
}

// ==================== 辅助函数 ====================

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parseIDs(raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
