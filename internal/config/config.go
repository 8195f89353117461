// Package config 统一加载服务端与控制台的运行配置。
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 运行配置
type Config struct {
	// 服务端
	ServerPort  string        `mapstructure:"server_port"`
	DatabaseDSN string        `mapstructure:"database_dsn"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	JWTTTL      time.Duration `mapstructure:"jwt_ttl"`

	// 管理员初始账号
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`

	// 控制台（客户端）
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	StoragePath    string        `mapstructure:"storage_path"`
}

// Load 读取配置：.env（可选）→ 环境变量 → 配置文件（可选）→ 默认值
// 环境变量前缀 XIANYU_ADMIN，如 XIANYU_ADMIN_SERVER_PORT
func Load() (*Config, error) {
	// .env 不存在不算错误
	if err := godotenv.Load(); err == nil {
		log.Println("[Config] 已加载 .env")
	}

	v := viper.New()
	v.SetEnvPrefix("XIANYU_ADMIN")
	v.AutomaticEnv()

	v.SetDefault("server_port", "8080")
	v.SetDefault("database_dsn", "xianyu_admin.db")
	v.SetDefault("jwt_secret", "xianyu-admin-secret-change-in-production")
	v.SetDefault("jwt_ttl", 24*time.Hour)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "123456")
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("storage_path", "xianyu_console.db")

	// 可选配置文件 ./xianyu_admin.yaml
	v.SetConfigName("xianyu_admin")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// 文件不存在走默认值；文件存在但读不了必须报出去
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		log.Printf("[Config] 已加载配置文件 %s", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("配置解析失败: %w", err)
	}
	return cfg, nil
}
