package console

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/state"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "同步管理",
	}
	cmd.AddCommand(
		newSyncStatusCmd(),
		newSyncRunCmd(),
		newSyncWatchCmd(),
		newSyncHistoryCmd(),
		newSyncCancelCmd(),
		newSyncRetryCmd(),
		newSyncAutoCmd(),
	)
	return cmd
}

func printRun(run *model.SyncRun) {
	if run == nil || run.Status == "" {
		fmt.Println("暂无同步记录")
		return
	}

	statusColor := color.New(color.FgWhite)
	switch run.Status {
	case model.SyncRunCompleted:
		statusColor = color.New(color.FgGreen)
	case model.SyncRunError:
		statusColor = color.New(color.FgRed)
	case model.SyncRunRunning:
		statusColor = color.New(color.FgCyan)
	case model.SyncRunCancelled:
		statusColor = color.New(color.FgYellow)
	}

	fmt.Printf("任务:   %s\n", run.ID)
	statusColor.Printf("状态:   %s (%d%%)\n", run.Status, run.Progress)
	if run.Message != "" {
		fmt.Printf("说明:   %s\n", run.Message)
	}
	fmt.Printf("开始:   %s\n", run.StartTime.Format("2006-01-02 15:04:05"))
	if run.EndTime != nil {
		fmt.Printf("结束:   %s\n", run.EndTime.Format("2006-01-02 15:04:05"))
	}
	if run.AffectedItems > 0 {
		fmt.Printf("商品数: %d\n", run.AffectedItems)
	}
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "最近一次同步状态",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Sync.FetchStatus(cmd.Context()); err != nil {
				return err
			}
			printRun(app.Sync.Status())
			return nil
		},
	}
}

func newSyncRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [itemId]...",
		Short: "触发手动同步（带参数时只同步指定商品）",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			return app.Sync.TriggerSync(cmd.Context(), args)
		},
	}
}

// newSyncWatchCmd 轮询同步状态直到任务结束或 Ctrl-C
func newSyncWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "实时跟踪同步进度",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			done := make(chan struct{})
			poller := state.NewStatusPoller(interval, func(ctx context.Context) error {
				if err := app.Sync.FetchStatus(ctx); err != nil {
					return err
				}
				run := app.Sync.Status()
				if run == nil || run.Status == "" {
					fmt.Println("暂无同步记录")
					close(done)
					return nil
				}
				fmt.Printf("\r[%s] %3d%% %s        ", run.Status, run.Progress, run.Message)
				if run.Status.Terminal() {
					fmt.Println()
					printRun(run)
					close(done)
				}
				return nil
			})

			poller.Start()
			defer poller.Stop()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-done:
			case <-quit:
				fmt.Println("\n已停止跟踪")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "轮询间隔")
	return cmd
}

func newSyncHistoryCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "同步历史",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Sync.FetchHistory(cmd.Context(), page, pageSize); err != nil {
				return err
			}

			runs := app.Sync.History()
			if len(runs) == 0 {
				fmt.Println("暂无同步记录")
				return nil
			}

			color.Cyan("%-38s %-10s %5s %-20s %s", "任务 ID", "状态", "进度", "开始时间", "说明")
			for _, run := range runs {
				fmt.Printf("%-38s %-10s %4d%% %-20s %s\n",
					run.ID, run.Status, run.Progress,
					run.StartTime.Format("2006-01-02 15:04:05"), run.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "页码")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "每页数量")
	return cmd
}

func newSyncCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <syncId>",
		Short: "取消同步任务",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			return app.Sync.CancelSync(cmd.Context(), args[0])
		},
	}
}

func newSyncRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <syncId>",
		Short: "重试失败的同步任务",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			return app.Sync.RetrySync(cmd.Context(), args[0])
		},
	}
}

func newSyncAutoCmd() *cobra.Command {
	var enable, disable bool
	var interval int

	cmd := &cobra.Command{
		Use:   "auto",
		Short: "查看或修改自动同步配置",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			if enable || disable {
				if enable && disable {
					return fmt.Errorf("--enable 与 --disable 不能同时指定")
				}
				return app.Sync.UpdateAutoSyncSettings(cmd.Context(), enable, interval)
			}

			if err := app.Sync.FetchAutoSyncSettings(cmd.Context()); err != nil {
				return err
			}
			settings := app.Sync.AutoSyncSettings()
			if settings == nil {
				fmt.Println("暂无自动同步配置")
				return nil
			}
			fmt.Printf("自动同步: %v\n", settings.Enabled)
			fmt.Printf("间隔:     %d 分钟\n", settings.Interval)
			if settings.LastSync != nil {
				fmt.Printf("上次同步: %s\n", settings.LastSync.Format("2006-01-02 15:04:05"))
			}
			if settings.NextSync != nil {
				fmt.Printf("下次同步: %s\n", settings.NextSync.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, "开启自动同步")
	cmd.Flags().BoolVar(&disable, "disable", false, "关闭自动同步")
	cmd.Flags().IntVar(&interval, "interval", 60, "同步间隔（分钟）")
	return cmd
}
