// Package console 是管理台的终端入口：把请求层、状态容器和本地存储
// 组装成一组 cobra 命令。
package console

import (
	"fmt"

	"github.com/fatih/color"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/config"
	"xianyu_admin_v1_202509/internal/notify"
	"xianyu_admin_v1_202509/internal/state"
	"xianyu_admin_v1_202509/pkg/database"
	"xianyu_admin_v1_202509/pkg/storage"
)

// App 控制台应用：所有命令共享的依赖
type App struct {
	Config *config.Config
	Client *client.Client
	Auth   *storage.AuthStorage

	Global   *state.GlobalStore
	Products *state.ProductStore
	Sync     *state.SyncStore
	Prompts  *state.PromptStore
	Delivery *state.DeliveryStore
}

// colorNotifier 把通知渲染成彩色终端输出
type colorNotifier struct{}

func (colorNotifier) Notify(level notify.Level, message string) {
	switch level {
	case notify.LevelSuccess:
		color.Green("✓ %s", message)
	case notify.LevelWarning:
		color.Yellow("! %s", message)
	case notify.LevelError:
		color.Red("✗ %s", message)
	default:
		fmt.Println(message)
	}
}

// NewApp 组装控制台依赖
// serverURL 非空时覆盖配置里的 API 地址
func NewApp(serverURL string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if serverURL != "" {
		cfg.APIBaseURL = serverURL
	}

	// 本地会话库：token、主题、筛选条件都落在这里
	db := database.InitDB(cfg.StoragePath)
	store, err := storage.New(db, "")
	if err != nil {
		return nil, fmt.Errorf("初始化本地存储失败: %w", err)
	}

	auth := storage.NewAuthStorage(store)
	theme := storage.NewThemeStorage(store)
	center := notify.NewCenter(colorNotifier{})

	var global *state.GlobalStore
	cli := client.New(cfg.APIBaseURL, auth, center,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithForcedLogout(func() {
			if global != nil {
				global.ForceLogout()
			}
		}),
	)
	global = state.NewGlobalStore(cli, auth, theme, center)

	return &App{
		Config:   cfg,
		Client:   cli,
		Auth:     auth,
		Global:   global,
		Products: state.NewProductStore(cli, center),
		Sync:     state.NewSyncStore(cli, center),
		Prompts:  state.NewPromptStore(cli, center),
		Delivery: state.NewDeliveryStore(cli, center),
	}, nil
}

// RequireLogin 未登录时直接报错，避免每个命令各自撞 401
func (a *App) RequireLogin() error {
	if a.Auth.Token() == "" {
		return fmt.Errorf("尚未登录，请先执行 login")
	}
	return nil
}
