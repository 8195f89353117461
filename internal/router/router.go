package router

import (
	"github.com/gin-gonic/gin"

	"xianyu_admin_v1_202509/internal/controller"
	"xianyu_admin_v1_202509/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	productCtl *controller.ProductController,
	promptCtl *controller.PromptController,
	syncCtl *controller.SyncController,
	deliveryCtl *controller.DeliveryController,
	systemCtl *controller.SystemController) {

	// 健康检查，不鉴权
	r.GET("/health", systemCtl.Health)

	api := r.Group("/api")

	// auth 鉴权组（登录本身不需要 Token）
	auth := api.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.GET("/validate", middleware.JWTAuth(), authCtl.Validate)

		authed := auth.Group("", middleware.JWTAuth())
		{
			authed.POST("/logout", authCtl.Logout)
			authed.GET("/me", authCtl.Me)
			authed.POST("/refresh", authCtl.Refresh)
			authed.POST("/change-password", authCtl.ChangePassword)
		}
	}

	// 其余接口统一要求登录
	protected := api.Group("", middleware.JWTAuth())
	{
		// 商品管理
		products := protected.Group("/products")
		{
			products.GET("", productCtl.List)
			products.POST("", productCtl.Create)
			products.GET("/stats", productCtl.Stats)
			products.GET("/categories", productCtl.Categories)
			products.POST("/batch-delete", productCtl.BatchDelete)
			products.POST("/batch-update-status", productCtl.BatchUpdateStatus)
			products.GET("/:id", productCtl.Get)
			products.PUT("/:id", productCtl.Update)
			products.DELETE("/:id", productCtl.Delete)

			// 商品提示词
			products.GET("/:id/prompts", promptCtl.GetProductPrompts)
			products.PUT("/:id/prompts", promptCtl.UpdateProductPrompt)
			products.PUT("/:id/prompts/batch", promptCtl.BatchUpdateProductPrompts)
			products.POST("/:id/apply-template", promptCtl.ApplyTemplate)
		}

		// 提示词模板与工具
		prompts := protected.Group("/prompts")
		{
			prompts.GET("/templates", promptCtl.ListTemplates)
			prompts.POST("/templates", promptCtl.CreateTemplate)
			prompts.PUT("/templates/:id", promptCtl.UpdateTemplate)
			prompts.DELETE("/templates/:id", promptCtl.DeleteTemplate)
			prompts.POST("/preview", promptCtl.Preview)
			prompts.POST("/validate", promptCtl.Validate)
			prompts.GET("/variables", promptCtl.Variables)
		}

		// 同步
		sync := protected.Group("/sync")
		{
			sync.GET("/status", syncCtl.Status)
			sync.POST("/manual", syncCtl.TriggerManual)
			sync.GET("/auto", syncCtl.AutoSettings)
			sync.POST("/auto", syncCtl.UpdateAutoSettings)
			sync.GET("/history", syncCtl.History)
			sync.POST("/test-connection", syncCtl.TestConnection)
			sync.GET("/:id/logs", syncCtl.Logs)
			sync.POST("/:id/cancel", syncCtl.Cancel)
			sync.POST("/:id/retry", syncCtl.Retry)
		}

		// 自动发货
		delivery := protected.Group("/delivery")
		{
			delivery.GET("/configs", deliveryCtl.ListConfigs)
			delivery.GET("/configs/:itemId", deliveryCtl.GetConfig)
			delivery.POST("/configs/:itemId", deliveryCtl.SaveConfig)
			delivery.PUT("/configs/:itemId", deliveryCtl.SaveConfig)
			delivery.DELETE("/configs/:itemId", deliveryCtl.DeleteConfig)
			delivery.GET("/records", deliveryCtl.Records)
			delivery.GET("/stats", deliveryCtl.Stats)
			delivery.POST("/deliver", deliveryCtl.Deliver)
		}

		// 系统
		system := protected.Group("/system")
		{
			system.GET("/stats", systemCtl.Stats)
			system.GET("/notifications", systemCtl.Notifications)
			system.POST("/notifications/:id/read", systemCtl.MarkNotificationRead)
		}

		// 闲鱼侧配置与商品
		config := protected.Group("/config")
		{
			config.GET("/cookies", systemCtl.CookieConfig)
			config.POST("/cookies", systemCtl.UpdateCookies)
			config.POST("/cookies/test", systemCtl.TestCookies)
		}
		xianyu := protected.Group("/xianyu")
		{
			xianyu.GET("/items", systemCtl.XianyuItems)
			xianyu.GET("/items/:itemId", systemCtl.XianyuItemDetail)
			xianyu.POST("/sync", systemCtl.SyncFromXianyu)
		}
	}
}
