package state

import (
	"context"
	"log"
	"sync"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/notify"
)

// ProductFilters 商品列表筛选器
type ProductFilters struct {
	Keyword  string
	Category string
	Status   string
}

// ProductStore 商品列表/详情状态容器
type ProductStore struct {
	client   *client.Client
	notifier notify.Notifier

	guard loadingGuard

	mu          sync.Mutex
	list        []model.Product
	current     *model.Product
	pagination  Pagination
	filters     ProductFilters
	selectedIDs []string
}

func NewProductStore(c *client.Client, notifier notify.Notifier) *ProductStore {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &ProductStore{
		client:     c,
		notifier:   notifier,
		pagination: Pagination{Current: 1, PageSize: DefaultPageSize},
	}
}

// ==================== 快照 ====================

func (s *ProductStore) Loading() bool { return s.guard.isLoading() }

func (s *ProductStore) List() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, len(s.list))
	copy(out, s.list)
	return out
}

func (s *ProductStore) Current() *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *ProductStore) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *ProductStore) Filters() ProductFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *ProductStore) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selectedIDs))
	copy(out, s.selectedIDs)
	return out
}

// ==================== 动作 ====================

// FetchList 拉取商品列表（按当前分页与筛选）
func (s *ProductStore) FetchList(ctx context.Context) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	s.mu.Lock()
	params := client.PaginationParams{
		Page:     s.pagination.Current,
		PageSize: s.pagination.PageSize,
		Keyword:  s.filters.Keyword,
		Category: s.filters.Category,
		Status:   s.filters.Status,
	}
	s.mu.Unlock()

	page, err := s.client.ProductList(ctx, params)
	if err != nil {
		log.Printf("[Product] 列表拉取失败: %v", err)
		s.notifier.Notify(notify.LevelError, "获取商品列表失败")
		return err
	}

	s.mu.Lock()
	s.list = page.List
	s.pagination = Pagination{Current: page.Page, PageSize: page.PageSize, Total: page.Total}
	s.mu.Unlock()
	return nil
}

// FetchProduct 拉取商品详情
func (s *ProductStore) FetchProduct(ctx context.Context, id string) error {
	if !s.guard.begin() {
		return nil
	}
	defer s.guard.end()

	product, err := s.client.GetProduct(ctx, id)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "获取商品详情失败")
		return err
	}

	s.mu.Lock()
	s.current = product
	s.mu.Unlock()
	return nil
}

// Create 创建商品成功后刷新列表
func (s *ProductStore) Create(ctx context.Context, req client.ProductCreateReq) (*model.Product, error) {
	if !s.guard.begin() {
		return nil, nil
	}

	product, err := s.client.CreateProduct(ctx, req)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "创建商品失败")
		return nil, err
	}

	s.notifier.Notify(notify.LevelSuccess, "创建商品成功")
	_ = s.FetchList(ctx)
	return product, nil
}

// Update 更新商品成功后刷新列表
func (s *ProductStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if !s.guard.begin() {
		return nil
	}

	_, err := s.client.UpdateProduct(ctx, id, fields)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "更新商品失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "更新商品成功")
	_ = s.FetchList(ctx)
	return nil
}

// Delete 删除商品成功后刷新列表
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	if !s.guard.begin() {
		return nil
	}

	err := s.client.DeleteProduct(ctx, id)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "删除商品失败")
		return err
	}

	s.notifier.Notify(notify.LevelSuccess, "删除商品成功")
	_ = s.FetchList(ctx)
	return nil
}

// BatchDelete 批量删除，完成后清空选中并刷新
func (s *ProductStore) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if !s.guard.begin() {
		return nil
	}

	err := s.client.BatchDeleteProducts(ctx, ids)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "批量删除失败")
		return err
	}

	s.mu.Lock()
	s.selectedIDs = nil
	s.mu.Unlock()

	s.notifier.Notify(notify.LevelSuccess, "批量删除成功")
	_ = s.FetchList(ctx)
	return nil
}

// BatchUpdateStatus 批量改状态
func (s *ProductStore) BatchUpdateStatus(ctx context.Context, ids []string, status model.ProductStatus) error {
	if len(ids) == 0 {
		return nil
	}
	if !s.guard.begin() {
		return nil
	}

	err := s.client.BatchUpdateProductStatus(ctx, ids, status)
	s.guard.end()
	if err != nil {
		s.notifier.Notify(notify.LevelError, "批量更新状态失败")
		return err
	}

	s.mu.Lock()
	s.selectedIDs = nil
	s.mu.Unlock()

	s.notifier.Notify(notify.LevelSuccess, "批量更新状态成功")
	_ = s.FetchList(ctx)
	return nil
}

// SetSelected 设置选中行
func (s *ProductStore) SetSelected(ids []string) {
	s.mu.Lock()
	s.selectedIDs = ids
	s.mu.Unlock()
}

// SetFilters 改筛选器并把分页重置回第 1 页
func (s *ProductStore) SetFilters(filters ProductFilters) {
	s.mu.Lock()
	s.filters = filters
	s.pagination.Current = 1
	s.mu.Unlock()
}

// SetPage 翻页
func (s *ProductStore) SetPage(page, pageSize int) {
	s.mu.Lock()
	if page > 0 {
		s.pagination.Current = page
	}
	if pageSize > 0 {
		s.pagination.PageSize = pageSize
	}
	s.mu.Unlock()
}

// ClearCurrent 离开详情页时清空
func (s *ProductStore) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Reset 恢复初始状态
func (s *ProductStore) Reset() {
	s.mu.Lock()
	s.list = nil
	s.current = nil
	s.selectedIDs = nil
	s.filters = ProductFilters{}
	s.pagination = Pagination{Current: 1, PageSize: DefaultPageSize}
	s.mu.Unlock()
}
