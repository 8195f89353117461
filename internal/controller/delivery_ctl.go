package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/internal/service"
)

type DeliveryController struct {
	deliveryService *service.DeliveryService
}

func NewDeliveryController(deliveryService *service.DeliveryService) *DeliveryController {
	return &DeliveryController{deliveryService: deliveryService}
}

// ==================== 配置 ====================

// ListConfigs 发货配置列表
// GET /api/delivery/configs?enabled_only=true
func (ctrl *DeliveryController) ListConfigs(c *gin.Context) {
	enabledOnly := c.Query("enabled_only") == "true"
	configs, err := ctrl.deliveryService.ListConfigs(c.Request.Context(), enabledOnly)
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	if configs == nil {
		configs = []model.DeliveryConfig{}
	}
	OK(c, configs)
}

// GetConfig 单个商品的发货配置
// GET /api/delivery/configs/:itemId
func (ctrl *DeliveryController) GetConfig(c *gin.Context) {
	config, err := ctrl.deliveryService.GetConfig(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "该商品尚未配置自动发货")
			return
		}
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, config)
}

// SaveConfig 保存发货配置
// POST /api/delivery/configs/:itemId
// PUT  /api/delivery/configs/:itemId
func (ctrl *DeliveryController) SaveConfig(c *gin.Context) {
	var req service.DeliveryConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}
	// URL 中的 itemId 优先
	req.ItemID = c.Param("itemId")

	config, err := ctrl.deliveryService.SaveConfig(c.Request.Context(), &req)
	if err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, config, "发货配置已保存")
}

// DeleteConfig 删除发货配置
// DELETE /api/delivery/configs/:itemId
func (ctrl *DeliveryController) DeleteConfig(c *gin.Context) {
	if err := ctrl.deliveryService.DeleteConfig(c.Request.Context(), c.Param("itemId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, 404, "该商品尚未配置自动发货")
			return
		}
		Fail(c, 500, "删除失败: "+err.Error())
		return
	}
	OKMessage(c, nil, "发货配置已删除")
}

// ==================== 流水与统计 ====================

// Records 发货流水
// GET /api/delivery/records?item_id=&buyer_id=&status=&limit=
func (ctrl *DeliveryController) Records(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	filter := repository.DeliveryRecordFilter{
		ItemID:   c.Query("item_id"),
		BuyerID:  c.Query("buyer_id"),
		Status:   model.DeliveryResult(c.Query("status")),
		Page:     1,
		PageSize: limit,
	}

	records, _, err := ctrl.deliveryService.Records(c.Request.Context(), filter)
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	if records == nil {
		records = []model.DeliveryRecord{}
	}
	OK(c, records)
}

// Stats 发货统计
// GET /api/delivery/stats
func (ctrl *DeliveryController) Stats(c *gin.Context) {
	stats, err := ctrl.deliveryService.Stats(c.Request.Context())
	if err != nil {
		Fail(c, 500, "查询失败: "+err.Error())
		return
	}
	OK(c, stats)
}

// Deliver 触发一次发货（订单回调）
// POST /api/delivery/deliver
func (ctrl *DeliveryController) Deliver(c *gin.Context) {
	var req service.DeliverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, "参数有误: "+err.Error())
		return
	}

	record, err := ctrl.deliveryService.Deliver(c.Request.Context(), &req)
	if err != nil {
		Fail(c, 400, err.Error())
		return
	}
	OKMessage(c, record, "发货成功")
}
