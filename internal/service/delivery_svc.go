package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
)

// ErrOutOfStock 有限库存已扣完
var ErrOutOfStock = errors.New("库存不足，无法发货")

type DeliveryService struct {
	deliveryRepo repository.DeliveryRepository
	productRepo  repository.ProductRepository
}

// NewDeliveryService 工厂方法
func NewDeliveryService(deliveryRepo repository.DeliveryRepository, productRepo repository.ProductRepository) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		productRepo:  productRepo,
	}
}

// ==================== 配置 ====================

// DeliveryConfigReq 发货配置保存请求
// ItemID 来自 URL 路径，不在请求体里
type DeliveryConfigReq struct {
	ItemID         string             `json:"-"`
	DeliveryType   model.DeliveryType `json:"delivery_type" binding:"required"`
	Content        string             `json:"delivery_content"`
	ExtractionCode string             `json:"extraction_code"`
	CustomMessage  string             `json:"custom_message"`
	IsEnabled      *bool              `json:"is_enabled"`
	StockCount     *int               `json:"stock_count"`
}

// ListConfigs 发货配置列表
func (s *DeliveryService) ListConfigs(ctx context.Context, enabledOnly bool) ([]model.DeliveryConfig, error) {
	return s.deliveryRepo.ListConfigs(ctx, enabledOnly)
}

// GetConfig 单个商品的发货配置
func (s *DeliveryService) GetConfig(ctx context.Context, itemID string) (*model.DeliveryConfig, error) {
	return s.deliveryRepo.GetConfig(ctx, itemID)
}

// HasConfig 商品是否已有发货配置
func (s *DeliveryService) HasConfig(ctx context.Context, itemID string) (bool, error) {
	_, err := s.deliveryRepo.GetConfig(ctx, itemID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// SaveConfig 保存发货配置（按 itemID upsert）
func (s *DeliveryService) SaveConfig(ctx context.Context, req *DeliveryConfigReq) (*model.DeliveryConfig, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	config := &model.DeliveryConfig{
		ItemID:         req.ItemID,
		DeliveryType:   req.DeliveryType,
		Content:        req.Content,
		ExtractionCode: req.ExtractionCode,
		CustomMessage:  req.CustomMessage,
		IsEnabled:      true,
		StockCount:     model.UnlimitedStock,
	}
	if req.IsEnabled != nil {
		config.IsEnabled = *req.IsEnabled
	}
	if req.StockCount != nil {
		config.StockCount = *req.StockCount
	}

	if err := s.deliveryRepo.SaveConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("保存发货配置失败: %w", err)
	}
	return config, nil
}

// DeleteConfig 删除发货配置
func (s *DeliveryService) DeleteConfig(ctx context.Context, itemID string) error {
	if _, err := s.deliveryRepo.GetConfig(ctx, itemID); err != nil {
		return err
	}
	return s.deliveryRepo.DeleteConfig(ctx, itemID)
}

func (s *DeliveryService) validate(req *DeliveryConfigReq) error {
	if !req.DeliveryType.Valid() {
		return fmt.Errorf("无效的发货类型: %s", req.DeliveryType)
	}
	if req.Content == "" {
		return errors.New("发货内容不能为空")
	}
	if req.StockCount != nil && *req.StockCount < model.UnlimitedStock {
		return errors.New("库存数量不合法")
	}
	return nil
}

// ==================== 发货 ====================

// DeliverReq 发货请求（订单触发）
type DeliverReq struct {
	OrderID string `json:"order_id"`
	ItemID  string `json:"item_id" binding:"required"`
	BuyerID string `json:"buyer_id"`
	ChatID  string `json:"chat_id"`
}

// Deliver 执行一次自动发货并记录流水
// 失败同样写流水（流水只追加），有限库存成功后扣减
func (s *DeliveryService) Deliver(ctx context.Context, req *DeliverReq) (*model.DeliveryRecord, error) {
	record := &model.DeliveryRecord{
		OrderID:      req.OrderID,
		ItemID:       req.ItemID,
		BuyerID:      req.BuyerID,
		ChatID:       req.ChatID,
		DeliveryTime: time.Now(),
	}

	config, err := s.deliveryRepo.GetConfig(ctx, req.ItemID)
	if err != nil {
		return s.fail(ctx, record, "商品未配置自动发货")
	}
	record.DeliveryType = string(config.DeliveryType)

	if !config.IsEnabled {
		return s.fail(ctx, record, "自动发货已停用")
	}
	if config.StockCount == 0 {
		return s.fail(ctx, record, ErrOutOfStock.Error())
	}

	content := config.Content
	if config.DeliveryType == model.DeliveryTypeNetdisk && config.ExtractionCode != "" {
		content = fmt.Sprintf("%s 提取码: %s", content, config.ExtractionCode)
	}
	if config.CustomMessage != "" {
		content = config.CustomMessage + "\n" + content
	}
	record.Content = content
	record.Status = model.DeliverySuccess

	if config.StockCount > 0 {
		if err := s.deliveryRepo.DecrementStock(ctx, req.ItemID); err != nil {
			if errors.Is(err, repository.ErrStockDepleted) {
				return s.fail(ctx, record, ErrOutOfStock.Error())
			}
			return s.fail(ctx, record, "扣减库存失败: "+err.Error())
		}
	}

	if err := s.deliveryRepo.AddRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("写发货流水失败: %w", err)
	}
	log.Printf("[Delivery] 商品 %s 发货成功 (order=%s)", req.ItemID, req.OrderID)
	return record, nil
}

func (s *DeliveryService) fail(ctx context.Context, record *model.DeliveryRecord, reason string) (*model.DeliveryRecord, error) {
	record.Status = model.DeliveryFailed
	record.ErrorMessage = reason
	if err := s.deliveryRepo.AddRecord(ctx, record); err != nil {
		log.Printf("[Delivery] 写失败流水失败: %v", err)
	}
	return record, errors.New(reason)
}

// ==================== 流水与统计 ====================

// Records 发货流水分页查询
func (s *DeliveryService) Records(ctx context.Context, filter repository.DeliveryRecordFilter) ([]model.DeliveryRecord, int64, error) {
	return s.deliveryRepo.ListRecords(ctx, filter)
}

// Stats 发货统计
func (s *DeliveryService) Stats(ctx context.Context) (*model.DeliveryStats, error) {
	return s.deliveryRepo.Stats(ctx)
}

// CleanupRecords 清理 N 天前的流水
func (s *DeliveryService) CleanupRecords(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = 90
	}
	return s.deliveryRepo.DeleteRecordsBefore(ctx, days)
}
