package client

import (
	"context"
	"strconv"

	"xianyu_admin_v1_202509/internal/model"
)

// ==================== 同步接口 ====================

// SyncStatus 当前（最近一次）同步任务状态
func (c *Client) SyncStatus(ctx context.Context) (*model.SyncRun, error) {
	resp, err := c.Get(ctx, "/api/sync/status", nil)
	if err != nil {
		return nil, err
	}
	var run model.SyncRun
	if err := resp.Decode(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// TriggerManualSync 手动触发同步；itemIds 为空表示全量
func (c *Client) TriggerManualSync(ctx context.Context, itemIDs []string) (syncID string, message string, err error) {
	resp, err := c.Post(ctx, "/api/sync/manual", map[string]interface{}{"itemIds": itemIDs})
	if err != nil {
		return "", "", err
	}
	var result struct {
		SyncID string `json:"syncId"`
	}
	if err := resp.Decode(&result); err != nil {
		return "", "", err
	}
	return result.SyncID, resp.Message, nil
}

// AutoSyncSettings 自动同步配置
func (c *Client) AutoSyncSettings(ctx context.Context) (*model.AutoSyncSettings, error) {
	resp, err := c.Get(ctx, "/api/sync/auto", nil)
	if err != nil {
		return nil, err
	}
	var settings model.AutoSyncSettings
	if err := resp.Decode(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateAutoSyncSettings 更新自动同步配置
func (c *Client) UpdateAutoSyncSettings(ctx context.Context, enabled bool, intervalMinutes int) error {
	_, err := c.Post(ctx, "/api/sync/auto", map[string]interface{}{
		"enabled":  enabled,
		"interval": intervalMinutes,
	})
	return err
}

// SyncHistoryPage 同步历史分页
type SyncHistoryPage struct {
	List     []model.SyncRun `json:"list"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// SyncHistory 同步历史
func (c *Client) SyncHistory(ctx context.Context, page, pageSize int) (*SyncHistoryPage, error) {
	resp, err := c.Get(ctx, "/api/sync/history", map[string]string{
		"page":     strconv.Itoa(page),
		"pageSize": strconv.Itoa(pageSize),
	})
	if err != nil {
		return nil, err
	}
	var result SyncHistoryPage
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SyncLogs 单次任务日志
func (c *Client) SyncLogs(ctx context.Context, syncID string, level string) ([]model.SyncLog, error) {
	var query map[string]string
	if level != "" {
		query = map[string]string{"level": level}
	}
	resp, err := c.Get(ctx, "/api/sync/"+syncID+"/logs", query)
	if err != nil {
		return nil, err
	}
	var result struct {
		List []model.SyncLog `json:"list"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return result.List, nil
}

// CancelSync 取消运行中的任务
func (c *Client) CancelSync(ctx context.Context, syncID string) error {
	_, err := c.Post(ctx, "/api/sync/"+syncID+"/cancel", nil)
	return err
}

// RetrySync 重试失败任务，返回新任务 ID
func (c *Client) RetrySync(ctx context.Context, syncID string) (string, error) {
	resp, err := c.Post(ctx, "/api/sync/"+syncID+"/retry", nil)
	if err != nil {
		return "", err
	}
	var result struct {
		NewSyncID string `json:"newSyncId"`
	}
	if err := resp.Decode(&result); err != nil {
		return "", err
	}
	return result.NewSyncID, nil
}

// TestConnection 后端连通性测试
func (c *Client) TestConnection(ctx context.Context) (*model.ConnectionTestResult, error) {
	resp, err := c.Post(ctx, "/api/sync/test-connection", nil)
	if err != nil {
		return nil, err
	}
	var result model.ConnectionTestResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
