package client

import (
	"context"
	"fmt"
	"strconv"

	"xianyu_admin_v1_202509/internal/model"
)

// ==================== 商品接口 ====================

// PaginationParams 列表查询参数
type PaginationParams struct {
	Page     int
	PageSize int
	Keyword  string
	Category string
	Status   string
}

func (p PaginationParams) query() map[string]string {
	q := map[string]string{
		"page":     strconv.Itoa(p.Page),
		"pageSize": strconv.Itoa(p.PageSize),
	}
	if p.Keyword != "" {
		q["keyword"] = p.Keyword
	}
	if p.Category != "" {
		q["category"] = p.Category
	}
	if p.Status != "" {
		q["status"] = p.Status
	}
	return q
}

// ProductPage 分页应答
type ProductPage struct {
	List     []model.Product `json:"list"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// ProductCreateReq 创建商品请求（向导最终一次性提交）
type ProductCreateReq struct {
	ItemID   string                 `json:"itemId"`
	Title    string                 `json:"title"`
	Desc     string                 `json:"desc"`
	Price    float64                `json:"price"`
	Category string                 `json:"category,omitempty"`
	Settings *model.ProductSettings `json:"settings,omitempty"`
}

// ProductList 获取商品列表
func (c *Client) ProductList(ctx context.Context, params PaginationParams) (*ProductPage, error) {
	resp, err := c.Get(ctx, "/api/products", params.query())
	if err != nil {
		return nil, err
	}
	var page ProductPage
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchProducts 按关键字搜索，走列表接口的 keyword 过滤
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]model.Product, error) {
	page, err := c.ProductList(ctx, PaginationParams{Page: 1, PageSize: 50, Keyword: keyword})
	if err != nil {
		return nil, err
	}
	return page.List, nil
}

// GetProduct 获取商品详情
func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	resp, err := c.Get(ctx, "/api/products/"+id, nil)
	if err != nil {
		return nil, err
	}
	var product model.Product
	if err := resp.Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct 创建商品
func (c *Client) CreateProduct(ctx context.Context, req ProductCreateReq) (*model.Product, error) {
	resp, err := c.Post(ctx, "/api/products", req)
	if err != nil {
		return nil, err
	}
	var product model.Product
	if err := resp.Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct 更新商品（字段级更新，itemId 不可改）
func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (*model.Product, error) {
	resp, err := c.Put(ctx, "/api/products/"+id, fields)
	if err != nil {
		return nil, err
	}
	var product model.Product
	if err := resp.Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct 删除商品
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.Del(ctx, "/api/products/"+id)
	return err
}

// BatchDeleteProducts 批量删除
func (c *Client) BatchDeleteProducts(ctx context.Context, ids []string) error {
	_, err := c.Post(ctx, "/api/products/batch-delete", map[string][]string{"ids": ids})
	return err
}

// BatchUpdateProductStatus 批量改状态
func (c *Client) BatchUpdateProductStatus(ctx context.Context, ids []string, status model.ProductStatus) error {
	if !status.Valid() {
		return fmt.Errorf("非法的商品状态: %s", status)
	}
	_, err := c.Post(ctx, "/api/products/batch-update-status", map[string]interface{}{
		"ids":    ids,
		"status": status,
	})
	return err
}

// ProductStats 商品统计
type ProductStats struct {
	Total      int64   `json:"total"`
	Active     int64   `json:"active"`
	Inactive   int64   `json:"inactive"`
	Draft      int64   `json:"draft"`
	TotalValue float64 `json:"totalValue"`
	AvgPrice   float64 `json:"avgPrice"`
}

// GetProductStats 商品维度统计
func (c *Client) GetProductStats(ctx context.Context) (*ProductStats, error) {
	resp, err := c.Get(ctx, "/api/products/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats ProductStats
	if err := resp.Decode(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ProductCategories 分类列表
func (c *Client) ProductCategories(ctx context.Context) ([]string, error) {
	resp, err := c.Get(ctx, "/api/products/categories", nil)
	if err != nil {
		return nil, err
	}
	var categories []string
	if err := resp.Decode(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}
