package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider     string `yaml:"provider" envconfig:"DATA_PROVIDER"`
		BaseURL      string `yaml:"base_url" envconfig:"DATA_BASE_URL"`
		APIKey       string `yaml:"api_key" envconfig:"DATA_API_KEY"`
		SymbolSuffix string `yaml:"symbol_suffix" envconfig:"SYMBOL_SUFFIX"`
		RateLimit    int    `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	} `yaml:"data_source"`
	Scan struct {
		WindowDays  int           `yaml:"window_days" envconfig:"WINDOW_DAYS"`
		TaskTimeout time.Duration `yaml:"task_timeout" envconfig:"TASK_TIMEOUT"`
		ScanTimeout time.Duration `yaml:"scan_timeout" envconfig:"SCAN_TIMEOUT"`
		PoolQuick   int           `yaml:"pool_quick" envconfig:"POOL_QUICK"`
		PoolFull    int           `yaml:"pool_full" envconfig:"POOL_FULL"`
	} `yaml:"scan"`
	Universe map[string][]string `yaml:"universe" ignored:"true"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron" envconfig:"SCAN_CRON"`
		ScanMode string `yaml:"scan_mode" envconfig:"SCAN_MODE"`
		TopN     int    `yaml:"top_n" envconfig:"TOP_N"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Server struct {
		Listen string `yaml:"listen" envconfig:"SERVER_LISTEN"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" envconfig:"LOG_LEVEL"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Path returns the config file location from CONFIG_PATH or the default.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults. A missing file is not an error.
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

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.SymbolSuffix == "" {
		c.DataSource.SymbolSuffix = ".IS"
	}
	if c.DataSource.RateLimit == 0 {
		c.DataSource.RateLimit = 10
	}
	if c.Scan.WindowDays == 0 {
		c.Scan.WindowDays = 45
	}
	if c.Scan.TaskTimeout == 0 {
		c.Scan.TaskTimeout = 12 * time.Second
	}
	if c.Scan.PoolQuick == 0 {
		c.Scan.PoolQuick = 15
	}
	if c.Scan.PoolFull == 0 {
		c.Scan.PoolFull = 10
	}
	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "0 30 18 * * 1-5"
	}
	if c.Schedule.ScanMode == "" {
		c.Schedule.ScanMode = "quick"
	}
	if c.Schedule.TopN == 0 {
		c.Schedule.TopN = 10
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, mock", c.DataSource.Provider)
	}
	if c.DataSource.RateLimit < 0 {
		return fmt.Errorf("data_source.rate_limit must not be negative")
	}
	// 42 calendar days is the shortest window that still holds 30 trading days.
	if c.Scan.WindowDays < 42 {
		return fmt.Errorf("scan.window_days must be at least 42, got %d", c.Scan.WindowDays)
	}
	if c.Scan.TaskTimeout <= 0 {
		return fmt.Errorf("scan.task_timeout must be positive")
	}
	if c.Scan.ScanTimeout < 0 {
		return fmt.Errorf("scan.scan_timeout must not be negative")
	}
	if c.Scan.PoolQuick <= 0 || c.Scan.PoolFull <= 0 {
		return fmt.Errorf("scan.pool_quick and scan.pool_full must be positive")
	}
	if c.Schedule.TopN <= 0 {
		return fmt.Errorf("schedule.top_n must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
