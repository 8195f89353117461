package console

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xianyu_admin_v1_202509/internal/model"
)

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "AI 提示词管理",
	}
	cmd.AddCommand(
		newPromptShowCmd(),
		newPromptSetCmd(),
		newPromptTemplatesCmd(),
		newPromptApplyCmd(),
		newPromptPreviewCmd(),
	)
	return cmd
}

func newPromptShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <productId>",
		Short: "查看商品的四类提示词",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Prompts.FetchPrompts(cmd.Context(), args[0]); err != nil {
				return err
			}

			prompts := app.Prompts.Prompts()
			for _, t := range model.AllPromptTypes {
				content := prompts.Get(t)
				if content == "" {
					color.New(color.Faint).Printf("[%s] 未配置\n", t)
					continue
				}
				color.Cyan("[%s]", t)
				fmt.Println(content)
			}
			return nil
		},
	}
}

func newPromptSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <productId> <type> <content>",
		Short: "设置单个槽位 (price/tech/default/classify)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			promptType := model.PromptType(args[1])
			if !promptType.Valid() {
				return fmt.Errorf("无效的提示词类型: %s", args[1])
			}

			if err := app.Prompts.FetchPrompts(cmd.Context(), args[0]); err != nil {
				return err
			}
			return app.Prompts.SavePrompt(cmd.Context(), promptType, args[2])
		},
	}
}

func newPromptTemplatesCmd() *cobra.Command {
	var promptType string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "模板列表",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Prompts.FetchTemplates(cmd.Context(), model.PromptType(promptType)); err != nil {
				return err
			}

			templates := app.Prompts.Templates()
			if len(templates) == 0 {
				fmt.Println("暂无模板")
				return nil
			}

			color.Cyan("%-38s %-10s %-20s %s", "ID", "类型", "名称", "默认")
			for _, tpl := range templates {
				mark := ""
				if tpl.IsDefault {
					mark = "✓"
				}
				fmt.Printf("%-38s %-10s %-20s %s\n", tpl.ID, tpl.Type, tpl.Name, mark)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&promptType, "type", "", "按类型过滤")
	return cmd
}

func newPromptApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <productId> <templateId>",
		Short: "把模板应用到商品（复制内容，后续互不影响）",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Prompts.FetchPrompts(cmd.Context(), args[0]); err != nil {
				return err
			}
			return app.Prompts.ApplyTemplate(cmd.Context(), args[1], "")
		},
	}
}

func newPromptPreviewCmd() *cobra.Command {
	var productID string

	cmd := &cobra.Command{
		Use:   "preview <template>",
		Short: "渲染预览模板（{title} 等占位符用商品信息替换）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			info := map[string]interface{}{}
			if productID != "" {
				if err := app.Products.FetchProduct(cmd.Context(), productID); err != nil {
					return err
				}
				if p := app.Products.Current(); p != nil {
					info["title"] = p.Title
					info["desc"] = p.Desc
					info["price"] = p.Price
					info["itemId"] = p.ItemID
					info["category"] = p.Category
				}
			}
			if err := app.Prompts.FetchPreview(cmd.Context(), args[0], info); err != nil {
				return err
			}

			result := app.Prompts.Preview()
			if result == nil {
				return fmt.Errorf("预览失败")
			}
			color.Cyan("— 预览 (%d 字) —", result.WordCount)
			fmt.Println(result.Preview)
			if len(result.Variables) > 0 {
				fmt.Println("\n已替换变量:")
				for key, value := range result.Variables {
					fmt.Printf("  {%s} = %s\n", key, value)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&productID, "product", "", "用指定商品的信息渲染")
	return cmd
}
