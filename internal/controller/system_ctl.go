package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/service"
)

type SystemController struct {
	systemService *service.SystemService
	xianyuService *service.XianyuService
}

func NewSystemController(systemService *service.SystemService, xianyuService *service.XianyuService) *SystemController {
	return &SystemController{
		systemService: systemService,
		xianyuService: xianyuService,
	}
}

// Health 健康检查
// GET /health
func (ctrl *SystemController) Health(c *gin.Context) {
	OK(c, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ==================== 统计与通知 ====================

// Stats 首页统计卡片
// GET /api/system/stats
func (ctrl *SystemController) Stats(c *gin.Context) {
	stats, err := ctrl.systemService.Stats(c.Request.Context())
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, stats)
}

// Notifications 系统通知
// GET /api/system/notifications?page=&pageSize=
func (ctrl *SystemController) Notifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := ctrl.systemService.Notifications(c.Request.Context(), page, pageSize)
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, result)
}

// MarkNotificationRead 标记通知已读
// POST /api/system/notifications/:id/read
func (ctrl *SystemController) MarkNotificationRead(c *gin.Context) {
	if err := ctrl.systemService.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, 500, "操作失败: "+err.Error())
		return
	}
	OKMessage(c, nil, "已标记为已读")
}

// ==================== 登录凭证 ====================

// CookieConfig 凭证配置（脱敏）
// GET /api/config/cookies
func (ctrl *SystemController) CookieConfig(c *gin.Context) {
	view, err := ctrl.xianyuService.CookieConfig(c.Request.Context())
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, view)
}

// UpdateCookies 更新凭证
// POST /api/config/cookies
func (ctrl *SystemController) UpdateCookies(c *gin.Context) {
	var req struct {
		CookiesStr string `json:"cookiesStr" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "cookie 不能为空")
		return
	}

	view, err := ctrl.xianyuService.UpdateCookies(c.Request.Context(), req.CookiesStr)
	if err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, view, "登录凭证已更新")
}

// TestCookies 凭证连通性测试
// POST /api/config/cookies/test
func (ctrl *SystemController) TestCookies(c *gin.Context) {
	var req struct {
		CookiesStr string `json:"cookiesStr"`
	}
	_ = c.ShouldBindJSON(&req)
	OK(c, ctrl.xianyuService.TestCookies(c.Request.Context(), req.CookiesStr))
}

// ==================== 闲鱼商品 ====================

// XianyuItems 闲鱼侧商品列表
// GET /api/xianyu/items?status=&page=&pageSize=
func (ctrl *SystemController) XianyuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	items, total, err := ctrl.xianyuService.ListItems(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}

	OK(c, gin.H{
		"list":     items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// XianyuItemDetail 闲鱼侧商品详情
// GET /api/xianyu/items/:itemId
func (ctrl *SystemController) XianyuItemDetail(c *gin.Context) {
	item, err := ctrl.xianyuService.GetItem(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "闲鱼商品不存在")
			return
		}
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, item)
}

// SyncFromXianyu 从闲鱼导入商品
// POST /api/xianyu/sync
func (ctrl *SystemController) SyncFromXianyu(c *gin.Context) {
	var req struct {
		ItemIDs []string `json:"itemIds"`
		SyncAll bool     `json:"syncAll"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	result, err := ctrl.xianyuService.ImportItems(c.Request.Context(), req.ItemIDs, req.SyncAll)
	if err != nil {
		Fail(c, 500, "导入失败: "+err.Error())
		return
	}
	OKMessage(c, result, result.Message)
}
