package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"airdrop-service/logger"
)

// Config 服务配置
type Config struct {
	// 上游数据源配置
	UpstreamURL  string        `yaml:"upstream_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// 缓存配置
	FreshnessWindow time.Duration `yaml:"freshness_window"` // 按需请求的缓存有效期
	RefreshInterval time.Duration `yaml:"refresh_interval"` // 后台定时刷新间隔

	// 时区配置: 所有日期计算使用统一的固定时区
	TZOffsetHours int `yaml:"tz_offset_hours"`

	// 服务器配置
	Port      string `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

// Load 加载配置: 先读可选的 YAML 文件,再用环境变量覆盖
func Load() *Config {
	cfg := &Config{
		UpstreamURL:     "https://api.airdrops.io/v2/airdrops",
		FetchTimeout:    30 * time.Second,
		FreshnessWindow: 5 * time.Minute,
		RefreshInterval: 10 * time.Minute,
		TZOffsetHours:   8,
		Port:            "8080",
		StaticDir:       "./static",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			logger.Errorf("[Config] Failed to load config file %s: %v", path, err)
		}
	}

	cfg.UpstreamURL = getEnv("UPSTREAM_URL", cfg.UpstreamURL)
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.FreshnessWindow = getEnvDuration("FRESHNESS_WINDOW", cfg.FreshnessWindow)
	cfg.RefreshInterval = getEnvDuration("REFRESH_INTERVAL", cfg.RefreshInterval)
	cfg.TZOffsetHours = getEnvInt("TZ_OFFSET_HOURS", cfg.TZOffsetHours)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)

	return cfg
}

// Location 返回配置的固定时区
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.TZOffsetHours), c.TZOffsetHours*3600)
}

func loadFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(value, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
