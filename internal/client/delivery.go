package client

import (
	"context"
	"strconv"

	"xianyu_admin_v1_202509/internal/model"
)

// ==================== 自动发货接口 ====================

// DeliveryConfigs 全部发货配置；enabledOnly 只取已启用的
func (c *Client) DeliveryConfigs(ctx context.Context, enabledOnly bool) ([]model.DeliveryConfig, error) {
	var query map[string]string
	if enabledOnly {
		query = map[string]string{"enabled_only": "true"}
	}
	resp, err := c.Get(ctx, "/api/delivery/configs", query)
	if err != nil {
		return nil, err
	}
	var configs []model.DeliveryConfig
	if err := resp.Decode(&configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// DeliveryConfig 单个商品的发货配置
func (c *Client) DeliveryConfig(ctx context.Context, itemID string) (*model.DeliveryConfig, error) {
	resp, err := c.Get(ctx, "/api/delivery/configs/"+itemID, nil)
	if err != nil {
		return nil, err
	}
	var config model.DeliveryConfig
	if err := resp.Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// DeliveryConfigReq 保存/更新发货配置的请求体
type DeliveryConfigReq struct {
	DeliveryType   model.DeliveryType `json:"delivery_type"`
	Content        string             `json:"delivery_content"`
	ExtractionCode string             `json:"extraction_code,omitempty"`
	CustomMessage  string             `json:"custom_message,omitempty"`
	IsEnabled      bool               `json:"is_enabled"`
	StockCount     int                `json:"stock_count"`
}

// SaveDeliveryConfig 首次保存即创建
func (c *Client) SaveDeliveryConfig(ctx context.Context, itemID string, req DeliveryConfigReq) error {
	_, err := c.Post(ctx, "/api/delivery/configs/"+itemID, req)
	return err
}

// UpdateDeliveryConfig 更新已有配置
func (c *Client) UpdateDeliveryConfig(ctx context.Context, itemID string, req DeliveryConfigReq) error {
	_, err := c.Put(ctx, "/api/delivery/configs/"+itemID, req)
	return err
}

// DeleteDeliveryConfig 显式删除配置
func (c *Client) DeleteDeliveryConfig(ctx context.Context, itemID string) error {
	_, err := c.Del(ctx, "/api/delivery/configs/"+itemID)
	return err
}

// DeliveryRecordFilter 发货流水筛选
type DeliveryRecordFilter struct {
	ItemID  string
	BuyerID string
	Limit   int
}

// DeliveryRecords 发货流水（只读）
func (c *Client) DeliveryRecords(ctx context.Context, filter DeliveryRecordFilter) ([]model.DeliveryRecord, error) {
	query := map[string]string{}
	if filter.ItemID != "" {
		query["item_id"] = filter.ItemID
	}
	if filter.BuyerID != "" {
		query["buyer_id"] = filter.BuyerID
	}
	if filter.Limit > 0 {
		query["limit"] = strconv.Itoa(filter.Limit)
	}

	resp, err := c.Get(ctx, "/api/delivery/records", query)
	if err != nil {
		return nil, err
	}
	var records []model.DeliveryRecord
	if err := resp.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeliveryStats 发货统计
func (c *Client) DeliveryStats(ctx context.Context) (*model.DeliveryStats, error) {
	resp, err := c.Get(ctx, "/api/delivery/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats model.DeliveryStats
	if err := resp.Decode(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
