package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.Source != "yahoo" {
		t.Errorf("default provider = %q, want yahoo", cfg.Provider.Source)
	}
	if cfg.Scan.Interval != "5m" || cfg.Scan.Lookback != 180 {
		t.Errorf("default scan = %q/%d, want 5m/180", cfg.Scan.Interval, cfg.Scan.Lookback)
	}
	if cfg.Scan.MinProb != 0.5 {
		t.Errorf("default min_prob = %v, want 0.5", cfg.Scan.MinProb)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("default listen = %q, want :8080", cfg.Server.Listen)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
telegram:
  bot_token: file-token
scan:
  interval: 1h
  lookback: 240
redis:
  addr: localhost:6379
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("SCAN_MIN_PROB", "0.7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("bot token = %q, env should override file", cfg.Telegram.BotToken)
	}
	if cfg.Scan.Interval != "1h" || cfg.Scan.Lookback != 240 {
		t.Errorf("scan = %q/%d, want 1h/240 from file", cfg.Scan.Interval, cfg.Scan.Lookback)
	}
	if cfg.Scan.MinProb != 0.7 {
		t.Errorf("min_prob = %v, want 0.7 from env", cfg.Scan.MinProb)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad source", func(c *Config) { c.Provider.Source = "alpaca" }},
		{"bad interval", func(c *Config) { c.Scan.Interval = "2m" }},
		{"short lookback", func(c *Config) { c.Scan.Lookback = 10 }},
		{"prob above one", func(c *Config) { c.Scan.MinProb = 1.5 }},
		{"negative limit", func(c *Config) { c.Scan.Limit = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}
