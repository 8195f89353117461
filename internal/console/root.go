package console

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	app       *App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "xianyu-admin",
	Short: "闲鱼商品管理台终端客户端",
	Long: `闲鱼商品管理台的终端客户端。

覆盖商品管理、AI 提示词配置、自动发货和同步管理，
登录态保存在本地，与后端通过统一的 API 信封通信。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		app, err = NewApp(serverURL)
		return err
	},
}

// Execute 控制台入口
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "后端 API 地址（默认读配置）")

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProductCmd(),
		newSyncCmd(),
		newPromptCmd(),
		newDeliveryCmd(),
		newStatsCmd(),
		newCookieCmd(),
	)
}
