package client

import (
	"context"
	"strconv"

	"xianyu_admin_v1_202509/internal/model"
)

// ==================== 系统接口 ====================

// SystemStats 控制台首页统计
func (c *Client) SystemStats(ctx context.Context) (*model.SystemStats, error) {
	resp, err := c.Get(ctx, "/api/system/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats model.SystemStats
	if err := resp.Decode(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// NotificationPage 通知分页
type NotificationPage struct {
	List        []model.NotificationMessage `json:"list"`
	Total       int64                       `json:"total"`
	UnreadCount int64                       `json:"unreadCount"`
}

// Notifications 系统通知
func (c *Client) Notifications(ctx context.Context, page, pageSize int) (*NotificationPage, error) {
	resp, err := c.Get(ctx, "/api/system/notifications", map[string]string{
		"page":     strconv.Itoa(page),
		"pageSize": strconv.Itoa(pageSize),
	})
	if err != nil {
		return nil, err
	}
	var result NotificationPage
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkNotificationRead 标记单条通知为已读
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := c.Post(ctx, "/api/system/notifications/"+id+"/read", nil)
	return err
}

// ==================== 闲鱼凭证接口 ====================

// CookieConfig 当前凭证配置（脱敏）
func (c *Client) CookieConfig(ctx context.Context) (*model.CookieConfigView, error) {
	resp, err := c.Get(ctx, "/api/config/cookies", nil)
	if err != nil {
		return nil, err
	}
	var view model.CookieConfigView
	if err := resp.Decode(&view); err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateCookieConfig 用 cookie 字符串整体更新凭证
func (c *Client) UpdateCookieConfig(ctx context.Context, cookiesStr string) error {
	_, err := c.Post(ctx, "/api/config/cookies", map[string]string{"cookiesStr": cookiesStr})
	return err
}

// TestCookieConnection 测试凭证有效性；cookiesStr 为空时测当前已存凭证
func (c *Client) TestCookieConnection(ctx context.Context, cookiesStr string) (*model.CookieTestResult, error) {
	body := map[string]string{}
	if cookiesStr != "" {
		body["cookiesStr"] = cookiesStr
	}
	resp, err := c.Post(ctx, "/api/config/cookies/test", body)
	if err != nil {
		return nil, err
	}
	var result model.CookieTestResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ==================== 闲鱼商品接口 ====================

// XianyuItemsPage 闲鱼侧商品分页
type XianyuItemsPage struct {
	List     []model.XianyuItem `json:"list"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// XianyuItems 闲鱼侧商品列表；status 取 ALL / ON_SALE / SOLD_OUT
func (c *Client) XianyuItems(ctx context.Context, page, pageSize int, status string) (*XianyuItemsPage, error) {
	query := map[string]string{
		"page":     strconv.Itoa(page),
		"pageSize": strconv.Itoa(pageSize),
	}
	if status != "" {
		query["status"] = status
	}

	resp, err := c.Get(ctx, "/api/xianyu/items", query)
	if err != nil {
		return nil, err
	}
	var result XianyuItemsPage
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// XianyuItemDetail 闲鱼侧商品详情
func (c *Client) XianyuItemDetail(ctx context.Context, itemID string) (*model.XianyuItem, error) {
	resp, err := c.Get(ctx, "/api/xianyu/items/"+itemID, nil)
	if err != nil {
		return nil, err
	}
	var item model.XianyuItem
	if err := resp.Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SyncFromXianyu 把闲鱼商品导入本地；syncAll 为 true 时忽略 itemIds
func (c *Client) SyncFromXianyu(ctx context.Context, itemIDs []string, syncAll bool) (*model.XianyuSyncResult, error) {
	resp, err := c.Post(ctx, "/api/xianyu/sync", map[string]interface{}{
		"itemIds": itemIDs,
		"syncAll": syncAll,
	})
	if err != nil {
		return nil, err
	}
	var result model.XianyuSyncResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
