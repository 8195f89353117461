package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
)

type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 工厂方法
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ==================== 请求/响应结构 ====================

// ProductCreateReq 创建商品请求（创建向导一次性提交）
type ProductCreateReq struct {
	ItemID    string                 `json:"itemId" binding:"required"`
	Title     string                 `json:"title" binding:"required"`
	Desc      string                 `json:"desc"`
	Category  string                 `json:"category"`
	Price     float64                `json:"price"`
	SoldPrice float64                `json:"soldPrice"`
	Status    model.ProductStatus    `json:"status"`
	Settings  *model.ProductSettings `json:"settings"`
}

// ProductView 带解码后提示词与策略的商品视图
type ProductView struct {
	model.Product
	Prompts  model.ProductPrompts   `json:"prompts"`
	Settings *model.ProductSettings `json:"settings,omitempty"`
}

// ProductStats 商品统计
type ProductStats struct {
	Total         int64   `json:"total"`
	Active        int64   `json:"active"`
	Inactive      int64   `json:"inactive"`
	Draft         int64   `json:"draft"`
	WithAIPrompts int64   `json:"withAiPrompts"`
	TotalValue    float64 `json:"totalValue"`
	AvgPrice      float64 `json:"avgPrice"`
}

// ==================== 查询 ====================

// List 分页查询商品列表
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]ProductView, int64, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("查询商品列表失败: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.toView(&products[i]))
	}
	return views, total, nil
}

// Get 查询单个商品
func (s *ProductService) Get(ctx context.Context, id int64) (*ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.toView(product)
	return &view, nil
}

// GetByItemID 按闲鱼商品 ID 查询
func (s *ProductService) GetByItemID(ctx context.Context, itemID string) (*ProductView, error) {
	product, err := s.productRepo.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view := s.toView(product)
	return &view, nil
}

// Categories 全部商品分类（去重）
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.productRepo.Categories(ctx)
}

// Stats 商品统计
func (s *ProductService) Stats(ctx context.Context) (*ProductStats, error) {
	var stats ProductStats
	var err error

	if stats.Total, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Active, err = s.productRepo.CountByStatus(ctx, model.ProductStatusActive); err != nil {
		return nil, err
	}
	if stats.Inactive, err = s.productRepo.CountByStatus(ctx, model.ProductStatusInactive); err != nil {
		return nil, err
	}
	if stats.Draft, err = s.productRepo.CountByStatus(ctx, model.ProductStatusDraft); err != nil {
		return nil, err
	}
	if stats.WithAIPrompts, err = s.productRepo.CountWithCustomPrompts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalValue, err = s.productRepo.SumPrice(ctx); err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.AvgPrice = stats.TotalValue / float64(stats.Total)
	}
	return &stats, nil
}

// ==================== 写入 ====================

// Create 创建商品，itemId 重复时报错
func (s *ProductService) Create(ctx context.Context, req *ProductCreateReq) (*ProductView, error) {
	if req.ItemID == "" {
		return nil, errors.New("itemId 不能为空")
	}
	if req.Price < 0 {
		return nil, errors.New("价格不能为负数")
	}

	if _, err := s.productRepo.GetByItemID(ctx, req.ItemID); err == nil {
		return nil, fmt.Errorf("商品 %s 已存在", req.ItemID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.ProductStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("无效的商品状态: %s", status)
	}

	product := &model.Product{
		ItemID:     req.ItemID,
		Title:      req.Title,
		Desc:       req.Desc,
		Category:   req.Category,
		Price:      req.Price,
		SoldPrice:  req.SoldPrice,
		Status:     status,
		SyncStatus: model.ProductSyncPending,
	}
	if req.Settings != nil {
		raw, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, fmt.Errorf("序列化销售策略失败: %w", err)
		}
		product.Settings = raw
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}

	view := s.toView(product)
	return &view, nil
}

// Update 部分更新商品字段
// itemId 创建后不可修改，传入会被直接忽略
func (s *ProductService) Update(ctx context.Context, id int64, fields map[string]interface{}) (*ProductView, error) {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	allowed := map[string]string{
		"title":     "title",
		"desc":      "desc",
		"category":  "category",
		"price":     "price",
		"soldPrice": "sold_price",
		"status":    "status",
	}

	updates := make(map[string]interface{})
	for key, value := range fields {
		column, ok := allowed[key]
		if !ok {
			continue
		}
		if key == "status" {
			status, _ := value.(string)
			if !model.ProductStatus(status).Valid() {
				return nil, fmt.Errorf("无效的商品状态: %v", value)
			}
		}
		if key == "price" || key == "soldPrice" {
			if price, ok := value.(float64); ok && price < 0 {
				return nil, errors.New("价格不能为负数")
			}
		}
		updates[column] = value
	}

	if settings, hit := fields["settings"]; hit {
		raw, err := json.Marshal(settings)
		if err != nil {
			return nil, fmt.Errorf("序列化销售策略失败: %w", err)
		}
		updates["settings"] = raw
	}

	if len(updates) > 0 {
		// 编辑后本地内容领先闲鱼侧，置回待同步
		updates["sync_status"] = model.ProductSyncPending
		if err := s.productRepo.UpdateFields(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("更新商品失败: %w", err)
		}
	}

	return s.Get(ctx, id)
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// BatchDelete 批量删除
func (s *ProductService) BatchDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return errors.New("未指定要删除的商品")
	}
	return s.productRepo.BatchDelete(ctx, ids)
}

// BatchUpdateStatus 批量修改上下架状态
func (s *ProductService) BatchUpdateStatus(ctx context.Context, ids []int64, status model.ProductStatus) error {
	if len(ids) == 0 {
		return errors.New("未指定要修改的商品")
	}
	if !status.Valid() {
		return fmt.Errorf("无效的商品状态: %s", status)
	}
	return s.productRepo.BatchUpdateStatus(ctx, ids, status)
}

// ==================== 视图转换 ====================

// toView 解码 JSON 字段，保证提示词四键恒全
func (s *ProductService) toView(product *model.Product) ProductView {
	view := ProductView{Product: *product}

	if len(product.Prompts) > 0 {
		// 解码失败按未配置处理
		_ = json.Unmarshal(product.Prompts, &view.Prompts)
	}
	if len(product.Settings) > 0 {
		var settings model.ProductSettings
		if err := json.Unmarshal(product.Settings, &settings); err == nil {
			view.Settings = &settings
		}
	}
	return view
}
