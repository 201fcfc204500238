package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Session struct {
		Open  string `yaml:"open"`  // HH:MM, inclusive grid start
		Close string `yaml:"close"` // HH:MM, inclusive grid end
	} `yaml:"session"`
	Calendar struct {
		Holidays []string `yaml:"holidays"` // YYYY-MM-DD, merged with built-in window
	} `yaml:"calendar"`
	Fetch struct {
		Timeouts    []time.Duration `yaml:"timeouts"` // increasing ladder per profile
		CurlPath    string          `yaml:"curl_path"`
		CurlTimeout time.Duration   `yaml:"curl_timeout"`
	} `yaml:"fetch"`
	Naver struct {
		BaseURL  string   `yaml:"base_url"`
		PageSize int      `yaml:"page_size"`
		Indices  []string `yaml:"indices"`
	} `yaml:"naver"`
	KRX struct {
		BaseURL         string `yaml:"base_url"`
		AuthKey         string `yaml:"auth_key"`
		ProductLabel    string `yaml:"product_label"`
		SessionLabel    string `yaml:"session_label"`
		NamePrefix      string `yaml:"name_prefix"`
		SessionSuffix   string `yaml:"session_suffix"`
		LooseMonthMatch bool   `yaml:"loose_month_match"`
		MonthTieBreak   string `yaml:"month_tie_break"` // "future" or "past"
	} `yaml:"krx"`
	Cache struct {
		Backend string        `yaml:"backend"` // "memory" or "redis"
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	LookbackDays int `yaml:"lookback_days"` // basis-date candidates to walk back
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("AUTH_KEY"); v != "" {
		c.KRX.AuthKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Session.Open == "" {
		c.Session.Open = "09:00"
	}
	if c.Session.Close == "" {
		c.Session.Close = "15:30"
	}
	if len(c.Fetch.Timeouts) == 0 {
		c.Fetch.Timeouts = []time.Duration{10 * time.Second, 20 * time.Second}
	}
	if c.Fetch.CurlPath == "" {
		c.Fetch.CurlPath = "curl"
	}
	if c.Fetch.CurlTimeout == 0 {
		c.Fetch.CurlTimeout = 20 * time.Second
	}
	if c.Naver.BaseURL == "" {
		c.Naver.BaseURL = "https://stock.naver.com"
	}
	if c.Naver.PageSize == 0 {
		c.Naver.PageSize = 500
	}
	if len(c.Naver.Indices) == 0 {
		c.Naver.Indices = []string{"KOSPI", "KOSDAQ"}
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Minute
	}
	if c.KRX.MonthTieBreak == "" {
		c.KRX.MonthTieBreak = "future"
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 10
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.KRX.BaseURL != "" && c.KRX.AuthKey == "" {
		return fmt.Errorf("krx.auth_key is required (set AUTH_KEY)")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for redis backend")
	}
	if c.KRX.MonthTieBreak != "future" && c.KRX.MonthTieBreak != "past" {
		return fmt.Errorf("krx.month_tie_break must be 'future' or 'past', got '%s'", c.KRX.MonthTieBreak)
	}
	open, err := time.Parse("15:04", c.Session.Open)
	if err != nil {
		return fmt.Errorf("session.open: %w", err)
	}
	close, err := time.Parse("15:04", c.Session.Close)
	if err != nil {
		return fmt.Errorf("session.close: %w", err)
	}
	if !open.Before(close) {
		return fmt.Errorf("session.open must be before session.close")
	}
	return nil
}
