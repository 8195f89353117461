package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("加载默认配置失败: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("默认端口应为 8080, got %s", cfg.ServerPort)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("默认请求超时应为 10s, got %v", cfg.RequestTimeout)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("默认管理员账号有误: %s", cfg.AdminUsername)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XIANYU_ADMIN_SERVER_PORT", "9090")
	t.Setenv("XIANYU_ADMIN_API_BASE_URL", "http://10.0.0.2:9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("环境变量应覆盖端口, got %s", cfg.ServerPort)
	}
	if cfg.APIBaseURL != "http://10.0.0.2:9090" {
		t.Errorf("环境变量应覆盖 API 地址, got %s", cfg.APIBaseURL)
	}
}
