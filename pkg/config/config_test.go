package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Provider.BaseURL != "https://api.coingecko.com/api/v3" {
		t.Fatalf("unexpected provider base url %q", c.Provider.BaseURL)
	}
	if c.Provider.LookbackDays != 1 || c.Provider.Granularity != "minute" {
		t.Fatalf("unexpected lookback defaults: %d %s", c.Provider.LookbackDays, c.Provider.Granularity)
	}
	if c.Poll.Interval != 60*time.Second {
		t.Fatalf("unexpected poll interval %v", c.Poll.Interval)
	}
	if len(c.Assets) != 7 || c.Assets[0].Symbol != "BTC" || c.Assets[6].Symbol != "XAU" {
		t.Fatalf("unexpected default registry: %+v", c.Assets)
	}
	if c.SignalStore.Backend != "memory" {
		t.Fatalf("unexpected store backend %q", c.SignalStore.Backend)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
environment: test
poll:
  interval: 30s
provider:
  lookback_days: 2
assets:
  - id: bitcoin
    symbol: BTC
  - id: ethereum
    symbol: ETH
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Poll.Interval != 30*time.Second {
		t.Fatalf("unexpected interval %v", c.Poll.Interval)
	}
	if c.Provider.LookbackDays != 2 {
		t.Fatalf("unexpected lookback %d", c.Provider.LookbackDays)
	}
	if len(c.Assets) != 2 || c.Assets[1].ID != "ethereum" {
		t.Fatalf("unexpected assets: %+v", c.Assets)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\ntelegram:\n  enabled: true\n  bot_token: from-file\n  chat_id: \"123\"\n")
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("ASSETS", "bitcoin:BTC,ethereum:ETH")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if c.Telegram.BotToken != "from-env" {
		t.Fatalf("expected env token, got %q", c.Telegram.BotToken)
	}
	if len(c.Assets) != 2 || c.Assets[0].ID != "bitcoin" || c.Assets[1].Symbol != "ETH" {
		t.Fatalf("unexpected assets from env: %+v", c.Assets)
	}
}

func TestValidateDuplicateSymbol(t *testing.T) {
	path := writeConfig(t, `
environment: test
assets:
  - id: bitcoin
    symbol: BTC
  - id: wrapped-bitcoin
    symbol: BTC
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected duplicate symbol error")
	}
}

func TestValidateTelegramRequiresToken(t *testing.T) {
	path := writeConfig(t, "environment: test\ntelegram:\n  enabled: true\n  chat_id: \"123\"\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected missing token error")
	}
}

func TestParseAssetsMalformed(t *testing.T) {
	if _, err := parseAssets("bitcoinBTC"); err == nil {
		t.Fatal("expected parse error")
	}
}
