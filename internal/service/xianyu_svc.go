package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
)

type XianyuService struct {
	xianyuRepo  repository.XianyuRepository
	productRepo repository.ProductRepository
}

// NewXianyuService 工厂方法
func NewXianyuService(xianyuRepo repository.XianyuRepository, productRepo repository.ProductRepository) *XianyuService {
	return &XianyuService{
		xianyuRepo:  xianyuRepo,
		productRepo: productRepo,
	}
}

// ==================== 闲鱼商品 ====================

// ListItems 闲鱼侧商品列表
func (s *XianyuService) ListItems(ctx context.Context, status string, page, pageSize int) ([]model.XianyuItem, int64, error) {
	return s.xianyuRepo.ListItems(ctx, status, page, pageSize)
}

// GetItem 闲鱼侧商品详情
func (s *XianyuService) GetItem(ctx context.Context, itemID string) (*model.XianyuItem, error) {
	return s.xianyuRepo.GetItem(ctx, itemID)
}

// ImportItems 把指定闲鱼商品导入为本地商品（按 itemId upsert）
// syncAll 为 true 时忽略 itemIDs，导入闲鱼侧全部商品
func (s *XianyuService) ImportItems(ctx context.Context, itemIDs []string, syncAll bool) (*model.XianyuSyncResult, error) {
	if syncAll {
		items, _, err := s.xianyuRepo.ListItems(ctx, "", 1, 1000)
		if err != nil {
			return nil, err
		}
		itemIDs = itemIDs[:0]
		for _, item := range items {
			itemIDs = append(itemIDs, item.ItemID)
		}
	}
	if len(itemIDs) == 0 {
		return nil, errors.New("未指定要导入的商品")
	}

	result := &model.XianyuSyncResult{}
	for _, itemID := range itemIDs {
		item, err := s.xianyuRepo.GetItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.FailedItems = append(result.FailedItems, itemID)
				continue
			}
			return nil, err
		}

		status := model.ProductStatusActive
		if item.Status == "SOLD_OUT" {
			status = model.ProductStatusInactive
		}
		product := &model.Product{
			ItemID:     item.ItemID,
			Title:      item.Title,
			Desc:       item.Description,
			Category:   item.Category,
			Price:      item.Price,
			SoldPrice:  item.OriginalPrice,
			Status:     status,
			SyncStatus: model.ProductSyncSynced,
		}
		if err := s.productRepo.UpsertByItemID(ctx, product); err != nil {
			log.Printf("[Xianyu] 导入商品 %s 失败: %v", itemID, err)
			result.FailedItems = append(result.FailedItems, itemID)
			continue
		}
		result.SyncedItems = append(result.SyncedItems, itemID)
	}

	result.SyncedCount = len(result.SyncedItems)
	result.FailedCount = len(result.FailedItems)
	result.Message = fmt.Sprintf("导入完成：成功 %d 件，失败 %d 件", result.SyncedCount, result.FailedCount)
	return result, nil
}

// ==================== 登录凭证 ====================

// CookieConfig 凭证配置视图，值脱敏后返回
func (s *XianyuService) CookieConfig(ctx context.Context) (*model.CookieConfigView, error) {
	entries, err := s.xianyuRepo.ListCookies(ctx)
	if err != nil {
		return nil, err
	}

	view := &model.CookieConfigView{
		CookiePreview: make(map[string]string),
		Status:        "not_configured",
	}
	if len(entries) == 0 {
		return view, nil
	}

	view.HasCookies = true
	view.Status = "configured"
	var latest time.Time
	for _, entry := range entries {
		view.CookiePreview[entry.Name] = maskValue(entry.Value)
		if entry.UpdatedAt.After(latest) {
			latest = entry.UpdatedAt
		}
	}
	view.LastUpdated = &latest
	return view, nil
}

// UpdateCookies 解析 "k1=v1; k2=v2" 格式的 cookie 串并整体替换
func (s *XianyuService) UpdateCookies(ctx context.Context, cookieString string) (*model.CookieConfigView, error) {
	cookieString = strings.TrimSpace(cookieString)
	if cookieString == "" {
		return nil, errors.New("cookie 不能为空")
	}

	entries, err := parseCookieString(cookieString)
	if err != nil {
		return nil, err
	}

	if err := s.xianyuRepo.ReplaceCookies(ctx, entries); err != nil {
		return nil, fmt.Errorf("保存凭证失败: %w", err)
	}
	log.Printf("[Xianyu] 登录凭证已更新，共 %d 项", len(entries))
	return s.CookieConfig(ctx)
}

// parseCookieString 解析 "k1=v1; k2=v2" 格式
func parseCookieString(cookieString string) ([]model.CookieEntry, error) {
	var entries []model.CookieEntry
	now := time.Now()
	for _, pair := range strings.Split(cookieString, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.Index(pair, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("cookie 格式错误: %s", pair)
		}
		entries = append(entries, model.CookieEntry{
			Name:      pair[:idx],
			Value:     pair[idx+1:],
			UpdatedAt: now,
		})
	}
	if len(entries) == 0 {
		return nil, errors.New("未解析到任何 cookie 键值对")
	}
	return entries, nil
}

// TestCookies 校验凭证是否可用；cookieString 非空时测它，否则测已存凭证
func (s *XianyuService) TestCookies(ctx context.Context, cookieString string) *model.CookieTestResult {
	result := &model.CookieTestResult{
		TestTime: time.Now().Format(time.RFC3339),
	}

	var entries []model.CookieEntry
	var err error
	if strings.TrimSpace(cookieString) != "" {
		entries, err = parseCookieString(cookieString)
		if err != nil {
			result.Status = "invalid"
			result.Message = err.Error()
			return result
		}
	} else {
		entries, err = s.xianyuRepo.ListCookies(ctx)
		if err != nil {
			result.Status = "error"
			result.Message = "读取凭证失败: " + err.Error()
			return result
		}
	}
	if len(entries) == 0 {
		result.Status = "invalid"
		result.Message = "尚未配置登录凭证"
		return result
	}

	// 必要键缺失视为失效
	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[entry.Name] = true
	}
	for _, required := range []string{"unb", "cookie2"} {
		if !names[required] {
			result.Status = "invalid"
			result.Message = fmt.Sprintf("凭证缺少必要字段 %s，请重新获取", required)
			return result
		}
	}

	result.Connected = true
	result.Status = "valid"
	result.Message = "凭证有效"
	return result
}

// maskValue 只保留首尾各 4 个字符
func maskValue(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "****" + value[len(value)-4:]
}
