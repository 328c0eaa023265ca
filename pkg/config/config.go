package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AssetEntry is one registry entry: provider id plus display ticker.
type AssetEntry struct {
	ID     string `yaml:"id"`
	Symbol string `yaml:"symbol"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Provider struct {
		BaseURL      string        `yaml:"base_url"`
		VsCurrency   string        `yaml:"vs_currency"`
		LookbackDays int           `yaml:"lookback_days"`
		Granularity  string        `yaml:"granularity"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"provider"`
	Poll struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"poll"`
	Telegram struct {
		Enabled  bool          `yaml:"enabled"`
		BaseURL  string        `yaml:"base_url"`
		BotToken string        `yaml:"bot_token"`
		ChatID   string        `yaml:"chat_id"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"telegram"`
	SignalStore struct {
		Backend string `yaml:"backend"` // memory or redis
		Redis   struct {
			Addr      string `yaml:"addr"`
			Password  string `yaml:"password"`
			DB        int    `yaml:"db"`
			KeyPrefix string `yaml:"key_prefix"`
		} `yaml:"redis"`
	} `yaml:"signal_store"`
	Events struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"events"`
	Assets []AssetEntry `yaml:"assets"`
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
// Credentials are a deployment concern and are expected to arrive this way
// rather than being committed to the config file.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.SignalStore.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("ASSETS"); v != "" {
		assets, err := parseAssets(v)
		if err != nil {
			return nil, fmt.Errorf("parse ASSETS: %w", err)
		}
		c.Assets = assets
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// parseAssets parses "bitcoin:BTC,ethereum:ETH" into registry entries.
func parseAssets(s string) ([]AssetEntry, error) {
	parts := strings.Split(s, ",")
	out := make([]AssetEntry, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, sym, ok := strings.Cut(p, ":")
		if !ok || id == "" || sym == "" {
			return nil, fmt.Errorf("entry %q must be id:SYMBOL", p)
		}
		out = append(out, AssetEntry{ID: id, Symbol: sym})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no entries")
	}
	return out, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Provider.VsCurrency == "" {
		c.Provider.VsCurrency = "usd"
	}
	if c.Provider.LookbackDays == 0 {
		c.Provider.LookbackDays = 1
	}
	if c.Provider.Granularity == "" {
		c.Provider.Granularity = "minute"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 15 * time.Second
	}
	if c.Poll.Interval == 0 {
		c.Poll.Interval = 60 * time.Second
	}
	if c.Telegram.BaseURL == "" {
		c.Telegram.BaseURL = "https://api.telegram.org"
	}
	if c.Telegram.Timeout == 0 {
		c.Telegram.Timeout = 10 * time.Second
	}
	if c.SignalStore.Backend == "" {
		c.SignalStore.Backend = "memory"
	}
	if c.SignalStore.Redis.KeyPrefix == "" {
		c.SignalStore.Redis.KeyPrefix = "coinwatch:signal:"
	}
	if len(c.Assets) == 0 {
		c.Assets = []AssetEntry{
			{ID: "bitcoin", Symbol: "BTC"},
			{ID: "ethereum", Symbol: "ETH"},
			{ID: "solana", Symbol: "SOL"},
			{ID: "ripple", Symbol: "XRP"},
			{ID: "cardano", Symbol: "ADA"},
			{ID: "binancecoin", Symbol: "BNB"},
			{ID: "gold", Symbol: "XAU"},
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive")
	}
	if c.Provider.LookbackDays <= 0 {
		return fmt.Errorf("provider.lookback_days must be positive")
	}
	if len(c.Assets) == 0 {
		return fmt.Errorf("assets cannot be empty")
	}
	seen := make(map[string]struct{}, len(c.Assets))
	for _, a := range c.Assets {
		if a.ID == "" || a.Symbol == "" {
			return fmt.Errorf("asset entries need both id and symbol")
		}
		if _, dup := seen[a.Symbol]; dup {
			return fmt.Errorf("duplicate asset symbol %q", a.Symbol)
		}
		seen[a.Symbol] = struct{}{}
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	switch c.SignalStore.Backend {
	case "memory":
	case "redis":
		if c.SignalStore.Redis.Addr == "" {
			return fmt.Errorf("signal_store.redis.addr is required for redis backend")
		}
	default:
		return fmt.Errorf("signal_store.backend must be 'memory' or 'redis', got '%s'", c.SignalStore.Backend)
	}
	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		return fmt.Errorf("events.topic is required when brokers are set")
	}
	return nil
}
