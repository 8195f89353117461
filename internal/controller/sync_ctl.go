package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/service"
)

type SyncController struct {
	syncService *service.SyncService
}

func NewSyncController(syncService *service.SyncService) *SyncController {
	return &SyncController{syncService: syncService}
}

// Status 最近一次同步状态
// GET /api/sync/status
func (ctrl *SyncController) Status(c *gin.Context) {
	run, err := ctrl.syncService.Status(c.Request.Context())
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, run)
}

// TriggerManual 触发手动同步
// POST /api/sync/manual
func (ctrl *SyncController) TriggerManual(c *gin.Context) {
	var req struct {
		ItemIDs []string `json:"itemIds"`
	}
	// body 可以为空（全量同步）
	_ = c.ShouldBindJSON(&req)

	run, err := ctrl.syncService.TriggerManual(c.Request.Context(), req.ItemIDs)
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			Fail(c, 409, err.Error())
			return
		}
		Fail(c, 500, "触发同步失败: "+err.Error())
		return
	}
	OKMessage(c, gin.H{"syncId": run.ID}, "同步任务已启动")
}

// AutoSettings 自动同步配置
// GET /api/sync/auto
func (ctrl *SyncController) AutoSettings(c *gin.Context) {
	settings, err := ctrl.syncService.GetSettings(c.Request.Context())
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, settings)
}

// UpdateAutoSettings 更新自动同步配置
// POST /api/sync/auto
func (ctrl *SyncController) UpdateAutoSettings(c *gin.Context) {
	var req struct {
		Enabled  bool `json:"enabled"`
		Interval int  `json:"interval"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	settings, err := ctrl.syncService.UpdateSettings(c.Request.Context(), req.Enabled, req.Interval)
	if err != nil {
		Fail(c, 500, err.Error())
		return
	}
	OKMessage(c, settings, "自动同步配置已更新")
}

// History 同步历史
// GET /api/sync/history?page=&pageSize=
func (ctrl *SyncController) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	runs, total, err := ctrl.syncService.History(c.Request.Context(), page, pageSize)
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}

	OK(c, gin.H{
		"list":     runs,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// Logs 同步日志
// GET /api/sync/:id/logs?level=&limit=
func (ctrl *SyncController) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	logs, err := ctrl.syncService.Logs(c.Request.Context(), c.Param("id"), c.Query("level"), limit)
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	if logs == nil {
		logs = []model.SyncLog{}
	}
	OK(c, gin.H{"list": logs})
}

// Cancel 取消同步任务
// POST /api/sync/:id/cancel
func (ctrl *SyncController) Cancel(c *gin.Context) {
	if err := ctrl.syncService.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, nil, "取消指令已发送")
}

// Retry 重试失败任务
// POST /api/sync/:id/retry
func (ctrl *SyncController) Retry(c *gin.Context) {
	run, err := ctrl.syncService.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			Fail(c, 409, err.Error())
			return
		}
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, gin.H{"newSyncId": run.ID}, "重试任务已启动")
}

// TestConnection 连通性测试
// POST /api/sync/test-connection
func (ctrl *SyncController) TestConnection(c *gin.Context) {
	OK(c, ctrl.syncService.TestConnection(c.Request.Context()))
}
