package console

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/model"
)

func newDeliveryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delivery",
		Short: "自动发货管理",
	}
	cmd.AddCommand(
		newDeliveryListCmd(),
		newDeliverySetCmd(),
		newDeliveryDeleteCmd(),
		newDeliveryRecordsCmd(),
		newDeliveryStatsCmd(),
	)
	return cmd
}

func newDeliveryListCmd() *cobra.Command {
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "发货配置列表",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Delivery.FetchConfigs(cmd.Context(), enabledOnly); err != nil {
				return err
			}

			configs := app.Delivery.Configs()
			if len(configs) == 0 {
				fmt.Println("暂无发货配置")
				return nil
			}

			color.Cyan("%-20s %-10s %-8s %-8s", "商品编号", "类型", "启用", "库存")
			for _, cfg := range configs {
				stock := fmt.Sprintf("%d", cfg.StockCount)
				if cfg.StockCount == model.UnlimitedStock {
					stock = "不限"
				}
				enabled := "否"
				if cfg.IsEnabled {
					enabled = "是"
				}
				fmt.Printf("%-20s %-10s %-8s %-8s\n", cfg.ItemID, cfg.DeliveryType, enabled, stock)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "只看已启用的配置")
	return cmd
}

func newDeliverySetCmd() *cobra.Command {
	var deliveryType, content, extractionCode, customMessage string
	var stock int
	var disabled bool

	cmd := &cobra.Command{
		Use:   "set <itemId>",
		Short: "保存发货配置",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			enabled := !disabled
			req := client.DeliveryConfigReq{
				DeliveryType:   model.DeliveryType(deliveryType),
				Content:        content,
				ExtractionCode: extractionCode,
				CustomMessage:  customMessage,
				IsEnabled:      enabled,
				StockCount:     stock,
			}
			return app.Delivery.SaveConfig(cmd.Context(), args[0], req)
		},
	}

	cmd.Flags().StringVar(&deliveryType, "type", "netdisk", "发货类型 (netdisk/cardkey/text)")
	cmd.Flags().StringVar(&content, "content", "", "发货内容")
	cmd.Flags().StringVar(&extractionCode, "code", "", "网盘提取码")
	cmd.Flags().StringVar(&customMessage, "message", "", "附加留言")
	cmd.Flags().IntVar(&stock, "stock", model.UnlimitedStock, "库存数量，-1 表示不限")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "保存为停用状态")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newDeliveryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <itemId>",
		Short: "删除发货配置",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			return app.Delivery.DeleteConfig(cmd.Context(), args[0])
		},
	}
}

func newDeliveryRecordsCmd() *cobra.Command {
	var itemID, status string

	cmd := &cobra.Command{
		Use:   "records",
		Short: "发货流水",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			app.Delivery.SetRecordFilters(client.DeliveryRecordFilter{
				ItemID: itemID,
			})
			if err := app.Delivery.FetchRecords(cmd.Context()); err != nil {
				return err
			}

			records := app.Delivery.Records()
			if status != "" {
				filtered := records[:0]
				for _, record := range records {
					if string(record.Status) == status {
						filtered = append(filtered, record)
					}
				}
				records = filtered
			}
			if len(records) == 0 {
				fmt.Println("暂无发货记录")
				return nil
			}

			color.Cyan("%-20s %-12s %-8s %-20s %s", "商品编号", "买家", "结果", "时间", "说明")
			for _, record := range records {
				note := ""
				if record.Status == model.DeliveryFailed {
					note = record.ErrorMessage
				}
				fmt.Printf("%-20s %-12s %-8s %-20s %s\n",
					record.ItemID, record.BuyerID, record.Status,
					record.DeliveryTime.Format("2006-01-02 15:04:05"), note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "按商品编号过滤")
	cmd.Flags().StringVar(&status, "status", "", "按结果过滤 (success/failed)")
	return cmd
}

func newDeliveryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "发货统计",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Delivery.FetchStats(cmd.Context()); err != nil {
				return err
			}

			stats := app.Delivery.Stats()
			if stats == nil {
				fmt.Println("暂无统计数据")
				return nil
			}
			fmt.Printf("配置总数:   %d（启用 %d）\n", stats.TotalConfigs, stats.EnabledConfigs)
			fmt.Printf("发货总数:   %d\n", stats.TotalDeliveries)
			fmt.Printf("成功数:     %d\n", stats.SuccessDeliveries)
			fmt.Printf("成功率:     %.1f%%\n", stats.SuccessRate)
			return nil
		},
	}
}
