package console

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/state"
)

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "商品管理",
	}
	cmd.AddCommand(
		newProductListCmd(),
		newProductShowCmd(),
		newProductCreateCmd(),
		newProductDeleteCmd(),
		newProductStatusCmd(),
	)
	return cmd
}

func newProductListCmd() *cobra.Command {
	var keyword, category, status string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "商品列表",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			app.Products.SetFilters(state.ProductFilters{
				Keyword:  keyword,
				Category: category,
				Status:   status,
			})
			app.Products.SetPage(page, pageSize)
			if err := app.Products.FetchList(cmd.Context()); err != nil {
				return err
			}

			products := app.Products.List()
			if len(products) == 0 {
				fmt.Println("没有符合条件的商品")
				return nil
			}

			pagination := app.Products.Pagination()
			color.Cyan("%-6s %-20s %-30s %10s %-10s %-10s", "ID", "商品编号", "标题", "价格", "状态", "同步状态")
			for _, p := range products {
				fmt.Printf("%-6d %-20s %-30s %10.2f %-10s %-10s\n",
					p.ID, p.ItemID, truncate(p.Title, 30), p.Price, p.Status, p.SyncStatus)
			}
			fmt.Printf("\n共 %d 件，第 %d 页\n", pagination.Total, pagination.Current)
			return nil
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "标题或编号关键词")
	cmd.Flags().StringVar(&category, "category", "", "分类")
	cmd.Flags().StringVar(&status, "status", "", "状态 (active/inactive/draft)")
	cmd.Flags().IntVar(&page, "page", 1, "页码")
	cmd.Flags().IntVar(&pageSize, "page-size", state.DefaultPageSize, "每页数量")
	return cmd
}

func newProductShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "商品详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			if err := app.Products.FetchProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			p := app.Products.Current()
			if p == nil {
				return fmt.Errorf("商品不存在")
			}

			color.Cyan("== %s ==", p.Title)
			fmt.Printf("ID:       %d\n", p.ID)
			fmt.Printf("商品编号: %s\n", p.ItemID)
			fmt.Printf("分类:     %s\n", p.Category)
			fmt.Printf("价格:     %.2f (原价 %.2f)\n", p.Price, p.SoldPrice)
			fmt.Printf("状态:     %s / 同步 %s\n", p.Status, p.SyncStatus)
			fmt.Printf("AI 提示词: %v\n", p.HasCustomPrompts)
			if p.Desc != "" {
				fmt.Printf("描述:\n%s\n", p.Desc)
			}
			return nil
		},
	}
}

// newProductCreateCmd 创建向导：基本信息 -> 销售策略 -> 确认提交
func newProductCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "创建商品（三步向导）",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			wizard := state.NewProductCreateWizard(app.Products)
			reader := bufio.NewReader(os.Stdin)

			// 第一步：基本信息
			color.Cyan("— 第一步：%s —", state.StepBasicInfo)
			info := state.BasicInfo{
				ItemID:   readLine(reader, "商品编号 (itemId): "),
				Title:    readLine(reader, "标题: "),
				Desc:     readLine(reader, "描述: "),
				Category: readLine(reader, "分类: "),
			}
			priceStr := readLine(reader, "价格: ")
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				return fmt.Errorf("价格格式有误: %s", priceStr)
			}
			info.Price = price
			wizard.SetBasicInfo(info)
			if err := wizard.Next(); err != nil {
				return err
			}

			// 第二步：销售策略
			color.Cyan("— 第二步：%s —", state.StepStrategy)
			settings := model.ProductSettings{UrgencyLevel: "medium"}
			if raw := readLine(reader, "最大折扣 0-1（回车跳过）: "); raw != "" {
				discount, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("折扣格式有误: %s", raw)
				}
				settings.MaxDiscount = discount
			}
			if raw := readLine(reader, "卖点（逗号分隔，回车跳过）: "); raw != "" {
				for _, pt := range strings.Split(raw, ",") {
					if pt = strings.TrimSpace(pt); pt != "" {
						settings.SellingPoints = append(settings.SellingPoints, pt)
					}
				}
			}
			if raw := readLine(reader, "紧迫程度 low/medium/high（默认 medium）: "); raw != "" {
				settings.UrgencyLevel = raw
			}
			wizard.SetStrategy(settings)
			if err := wizard.Next(); err != nil {
				return err
			}

			// 第三步：确认
			color.Cyan("— 第三步：%s —", state.StepConfirm)
			fmt.Printf("编号 %s / 标题 %s / 价格 %.2f\n", info.ItemID, info.Title, info.Price)
			if readLine(reader, "确认创建? (y/N): ") != "y" {
				fmt.Println("已取消")
				return nil
			}

			product, err := wizard.Submit(cmd.Context())
			if err != nil {
				return err
			}
			color.Green("商品创建成功，ID=%d", product.ID)
			return nil
		},
	}
}

func newProductDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "删除商品（支持多个 ID）",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if len(args) == 1 {
				return app.Products.Delete(cmd.Context(), args[0])
			}
			return app.Products.BatchDelete(cmd.Context(), args)
		},
	}
}

func newProductStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <active|inactive|draft> <id>...",
		Short: "批量修改商品状态",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			status := model.ProductStatus(args[0])
			if !status.Valid() {
				return fmt.Errorf("无效的状态: %s", args[0])
			}
			return app.Products.BatchUpdateStatus(cmd.Context(), args[1:], status)
		},
	}
}

// ==================== 辅助函数 ====================

func readLine(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
