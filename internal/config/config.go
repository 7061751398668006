package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Provider struct {
		Source string `yaml:"source"` // yahoo or mock
	} `yaml:"provider"`
	Scan struct {
		Interval string  `yaml:"interval"`
		Lookback int     `yaml:"lookback"`
		Limit    int     `yaml:"limit"`
		MinProb  float64 `yaml:"min_prob"`
	} `yaml:"scan"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		ScanCron    string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	UniverseFile string `yaml:"universe_file"`
	Proxy        string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PROVIDER_SOURCE"); v != "" {
		cfg.Provider.Source = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("SCAN_MIN_PROB"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.MinProb = p
		}
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}

	// Defaults
	if cfg.Provider.Source == "" {
		cfg.Provider.Source = "yahoo"
	}
	if cfg.Scan.Interval == "" {
		cfg.Scan.Interval = "5m"
	}
	if cfg.Scan.Lookback == 0 {
		cfg.Scan.Lookback = 180
	}
	if cfg.Scan.Limit == 0 {
		cfg.Scan.Limit = 10
	}
	if cfg.Scan.MinProb == 0 {
		cfg.Scan.MinProb = 0.5
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/bullscout.db"
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}

	return cfg, nil
}

// Validate checks configuration consistency. Telegram credentials are
// optional; without them the bot runs headless behind the HTTP API.
func (c *Config) Validate() error {
	switch c.Provider.Source {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("provider.source must be yahoo or mock, got %q", c.Provider.Source)
	}
	switch c.Scan.Interval {
	case "1m", "5m", "1h", "1d":
	default:
		return fmt.Errorf("scan.interval must be one of 1m, 5m, 1h, 1d, got %q", c.Scan.Interval)
	}
	if c.Scan.Lookback < 60 {
		return fmt.Errorf("scan.lookback must be at least 60, got %d", c.Scan.Lookback)
	}
	if c.Scan.MinProb < 0 || c.Scan.MinProb > 1 {
		return fmt.Errorf("scan.min_prob must be in [0, 1], got %v", c.Scan.MinProb)
	}
	if c.Scan.Limit <= 0 {
		return fmt.Errorf("scan.limit must be positive, got %d", c.Scan.Limit)
	}
	return nil
}
