package console

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "系统概览统计",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			app.Global.FetchStats(cmd.Context())
			stats := app.Global.Stats()
			if stats == nil {
				return fmt.Errorf("统计拉取失败")
			}

			fmt.Printf("商品总数:       %d（在售 %d）\n", stats.TotalProducts, stats.ActiveProducts)
			fmt.Printf("商品总价值:     %.2f\n", stats.TotalValue)
			fmt.Printf("AI 配置率:      %.1f%%\n", stats.AiConfigRate)
			fmt.Printf("今日同步次数:   %d\n", stats.TodaySyncCount)
			if stats.ErrorCount > 0 {
				color.Red("同步异常商品:   %d", stats.ErrorCount)
			} else {
				fmt.Printf("同步异常商品:   0\n")
			}
			return nil
		},
	}
}

func newCookieCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookie",
		Short: "闲鱼登录凭证管理",
	}
	cmd.AddCommand(
		newCookieShowCmd(),
		newCookieSetCmd(),
		newCookieTestCmd(),
	)
	return cmd
}

func newCookieShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "查看当前凭证（脱敏）",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			view, err := app.Client.CookieConfig(cmd.Context())
			if err != nil {
				return err
			}
			if !view.HasCookies {
				fmt.Println("尚未配置登录凭证")
				return nil
			}

			color.Cyan("状态: %s", view.Status)
			if view.LastUpdated != nil {
				fmt.Printf("更新时间: %s\n", view.LastUpdated.Format("2006-01-02 15:04:05"))
			}
			for name, value := range view.CookiePreview {
				fmt.Printf("  %s = %s\n", name, value)
			}
			return nil
		},
	}
}

func newCookieSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <cookieStr>",
		Short: "更新凭证，格式 \"k1=v1; k2=v2\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Client.UpdateCookieConfig(cmd.Context(), args[0]); err != nil {
				return err
			}
			color.Green("凭证已更新")
			return nil
		},
	}
}

func newCookieTestCmd() *cobra.Command {
	var cookiesStr string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "测试凭证有效性",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			result, err := app.Client.TestCookieConnection(cmd.Context(), cookiesStr)
			if err != nil {
				return err
			}
			if result.Connected {
				color.Green("凭证有效: %s", result.Message)
			} else {
				color.Red("凭证无效: %s", result.Message)
			}
			fmt.Printf("测试时间: %s\n", result.TestTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&cookiesStr, "cookies", "", "待测试的 cookie 串，留空测当前已存凭证")
	return cmd
}
