package console

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "登录管理台",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				fmt.Print("用户名: ")
				if _, err := fmt.Scanln(&username); err != nil {
					return fmt.Errorf("读取用户名失败: %w", err)
				}
			}
			if password == "" {
				fmt.Print("密码: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("读取密码失败: %w", err)
				}
				password = string(raw)
			}

			if !app.Global.Login(cmd.Context(), username, password) {
				return fmt.Errorf("登录失败")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "用户名")
	cmd.Flags().StringVarP(&password, "password", "p", "", "密码（不建议在命令行明文传入）")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "退出登录并清除本地会话",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			app.Global.Logout(cmd.Context())
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "查看当前登录用户",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			app.Global.FetchCurrentUser(cmd.Context())
			user := app.Global.User()
			if user == nil {
				return fmt.Errorf("登录态已失效，请重新登录")
			}

			color.Cyan("用户名: %s", user.Username)
			fmt.Printf("角色:   %s\n", user.Role)
			if user.Email != "" {
				fmt.Printf("邮箱:   %s\n", user.Email)
			}
			return nil
		},
	}
}
