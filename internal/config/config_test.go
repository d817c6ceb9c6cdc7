package config

import (
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("ALPACA_API_KEY", "key-from-env")
	t.Setenv("ALPACA_SECRET_KEY", "secret-from-env")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/hook")
	t.Setenv("TELEGRAM_CHAT_ID", "99")

	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "futures-alert-bot-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.Scan.Symbol != "NQ/USD" || cfg.Scan.DisplaySymbol != "NQ" {
		t.Fatalf("unexpected scan symbol: %+v", cfg.Scan)
	}
	if cfg.Scan.IntervalMs != 60000 {
		t.Fatalf("unexpected scan interval: %d", cfg.Scan.IntervalMs)
	}
	if cfg.Feed.Provider != "stub" {
		t.Fatalf("unexpected feed provider: %s", cfg.Feed.Provider)
	}
	if cfg.Account.Size != 50000 || cfg.Account.PointValue != 20 {
		t.Fatalf("unexpected account settings: %+v", cfg.Account)
	}
	if cfg.Gates.FearFloor != 25 || cfg.Gates.GreedCeiling != 75 {
		t.Fatalf("unexpected sentiment bounds: %+v", cfg.Gates)
	}
	if cfg.Gates.CalendarURL == "" {
		t.Fatalf("expected calendar URL default to survive overlay")
	}
	if cfg.Strategy.VolumeMult != 2.0 {
		t.Fatalf("unexpected volume mult: %.2f", cfg.Strategy.VolumeMult)
	}
	if cfg.Strategy.StopClampMin != 3 || cfg.Strategy.StopClampMax != 10 {
		t.Fatalf("unexpected clamp bounds: %+v", cfg.Strategy)
	}

	if cfg.Feed.APIKey != "key-from-env" || cfg.Feed.APISecret != "secret-from-env" {
		t.Fatalf("expected credentials from env, got %+v", cfg.Feed)
	}
	if cfg.Sinks.DiscordWebhook != "https://discord.example/hook" {
		t.Fatalf("expected discord webhook from env, got %s", cfg.Sinks.DiscordWebhook)
	}
	if cfg.Sinks.TelegramChatID != 99 {
		t.Fatalf("expected chat id overridden from env, got %d", cfg.Sinks.TelegramChatID)
	}
	if cfg.Sinks.SheetsWebhook != "" {
		t.Fatalf("expected sheets webhook unset, got %s", cfg.Sinks.SheetsWebhook)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Scan.IntervalMs != 120000 {
		t.Fatalf("expected 2-minute default interval, got %d", cfg.Scan.IntervalMs)
	}
	if cfg.Scan.MinBars != 20 {
		t.Fatalf("expected min bars 20, got %d", cfg.Scan.MinBars)
	}
	if cfg.Strategy.StopClampMin != 3 || cfg.Strategy.StopClampMax != 10 {
		t.Fatalf("unexpected default clamp bounds: %+v", cfg.Strategy)
	}
	if cfg.Account.Size != 25000 || cfg.Account.RiskPercent != 0.01 {
		t.Fatalf("unexpected default account: %+v", cfg.Account)
	}
}
