package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"xianyu_admin_v1_202509/internal/config"
	"xianyu_admin_v1_202509/internal/controller"
	"xianyu_admin_v1_202509/internal/middleware"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/internal/router"
	"xianyu_admin_v1_202509/internal/service"
	"xianyu_admin_v1_202509/internal/task"
	"xianyu_admin_v1_202509/pkg/database"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 保证默认管理员存在
	if err := deps.Services.Auth.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("初始化管理员失败: %v", err)
	}

	// 5. 启动定时任务
	tasks := initTasks(deps)

	// 6. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Product,
		deps.Controllers.Prompt,
		deps.Controllers.Sync,
		deps.Controllers.Delivery,
		deps.Controllers.System,
	)

	// 7. 启动服务
	startServer(r, cfg.ServerPort, tasks)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User         repository.UserRepository
	Product      repository.ProductRepository
	Template     repository.TemplateRepository
	Sync         repository.SyncRepository
	Delivery     repository.DeliveryRepository
	Notification repository.NotificationRepository
	Xianyu       repository.XianyuRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Product  *service.ProductService
	Prompt   *service.PromptService
	Sync     *service.SyncService
	Delivery *service.DeliveryService
	Xianyu   *service.XianyuService
	System   *service.SystemService
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Product  *controller.ProductController
	Prompt   *controller.PromptController
	Sync     *controller.SyncController
	Delivery *controller.DeliveryController
	System   *controller.SystemController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.DatabaseDSN,
		&model.SysUser{},
		&model.Product{}, &model.PromptTemplate{},
		&model.SyncRun{}, &model.SyncLog{}, &model.AutoSyncSettings{},
		&model.DeliveryConfig{}, &model.DeliveryRecord{},
		&model.NotificationMessage{},
		&model.XianyuItem{}, &model.CookieEntry{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// JWT 配置
	jwtCfg := middleware.DefaultJWTConfig()
	if cfg.JWTSecret != "" {
		jwtCfg.SecretKey = cfg.JWTSecret
	}
	if cfg.JWTTTL > 0 {
		jwtCfg.AccessTokenTTL = cfg.JWTTTL
	}
	middleware.SetJWTConfig(jwtCfg)

	// -------- Repo 层 --------
	repos := &Repositories{
		User:         repository.NewUserRepository(db),
		Product:      repository.NewProductRepository(db),
		Template:     repository.NewTemplateRepository(db),
		Sync:         repository.NewSyncRepository(db),
		Delivery:     repository.NewDeliveryRepository(db),
		Notification: repository.NewNotificationRepository(db),
		Xianyu:       repository.NewXianyuRepository(db),
	}

	// -------- 业务服务 --------
	services := &Services{
		Auth:     service.NewAuthService(repos.User),
		Product:  service.NewProductService(repos.Product),
		Prompt:   service.NewPromptService(repos.Product, repos.Template),
		Sync:     service.NewSyncService(repos.Sync, repos.Product),
		Delivery: service.NewDeliveryService(repos.Delivery, repos.Product),
		Xianyu:   service.NewXianyuService(repos.Xianyu, repos.Product),
		System:   service.NewSystemService(repos.Product, repos.Sync, repos.Notification),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Product:  controller.NewProductController(services.Product),
		Prompt:   controller.NewPromptController(services.Prompt),
		Sync:     controller.NewSyncController(services.Sync),
		Delivery: controller.NewDeliveryController(services.Delivery),
		System:   controller.NewSystemController(services.System, services.Xianyu),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// Tasks 需要随服务关停的任务集合
type Tasks struct {
	AutoSync *task.AutoSyncTask
	Cleanup  *task.CleanupTask
}

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *Tasks {
	tasks := &Tasks{
		AutoSync: task.NewAutoSyncTask(deps.Services.Sync),
		Cleanup:  task.NewCleanupTask(deps.Services.Delivery),
	}

	if err := tasks.AutoSync.Start(); err != nil {
		log.Fatalf("启动自动同步任务失败: %v", err)
	}
	if err := tasks.Cleanup.Start(); err != nil {
		log.Fatalf("启动清理任务失败: %v", err)
	}

	log.Println("定时任务已启动")
	return tasks
}

// ==================== 服务启动 ====================

// startServer 启动服务并处理优雅关停
func startServer(r *gin.Engine, port string, tasks *Tasks) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("[Server] 服务启动于 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[Server] 收到退出信号，开始优雅关停...")

	// 先停任务，再停 HTTP 服务
	tasks.AutoSync.Stop()
	tasks.Cleanup.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] 关停超时: %v", err)
	}
	log.Println("[Server] 服务已退出")
}
