// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	ListenAddr  string `yaml:"listen_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Scan describes the single instrument being watched and the scanning cadence.
type Scan struct {
	Symbol          string `yaml:"symbol"`         // market-data symbol, e.g. "MNQ/USD"
	DisplaySymbol   string `yaml:"display_symbol"` // symbol as written into alerts, e.g. "MNQ"
	IntervalMs      int    `yaml:"interval_ms"`
	LookbackMinutes int    `yaml:"lookback_minutes"`
	MinBars         int    `yaml:"min_bars"`
	SessionTZ       string `yaml:"session_tz"`
}

// Feed selects and tunes the bar source provider.
type Feed struct {
	Provider  string `yaml:"provider"` // alpaca | stream | stub
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"-"`
	APISecret string `yaml:"-"`
}

// Account holds the fixed sizing assumptions threaded through the pipeline.
type Account struct {
	Size        float64 `yaml:"size"`
	RiskPercent float64 `yaml:"risk_percent"`
	PointValue  float64 `yaml:"point_value"`
}

// Gates configures the news-blackout and sentiment filters.
type Gates struct {
	CalendarURL    string `yaml:"calendar_url"`
	SentimentURL   string `yaml:"sentiment_url"`
	NewsWindowSecs int    `yaml:"news_window_secs"`
	FearFloor      int    `yaml:"fear_floor"`
	GreedCeiling   int    `yaml:"greed_ceiling"`
	TimeoutMs      int    `yaml:"timeout_ms"`
}

// Strategy groups tunable knobs shared by the evaluators.
type Strategy struct {
	ORBOpenBars      int     `yaml:"orb_open_bars"`
	ORBWindowMinutes int     `yaml:"orb_window_minutes"`
	BreakoutLookback int     `yaml:"breakout_lookback"`
	VolumeLookback   int     `yaml:"volume_lookback"`
	VolumeMult       float64 `yaml:"volume_mult"`
	StopClampMin     float64 `yaml:"stop_clamp_min"`
	StopClampMax     float64 `yaml:"stop_clamp_max"`
}

// Sinks configures the fire-and-forget notification destinations. Empty
// destinations disable the corresponding sink.
type Sinks struct {
	DiscordWebhook string `yaml:"-"`
	SheetsWebhook  string `yaml:"-"`
	TelegramToken  string `yaml:"-"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	TimeoutMs      int    `yaml:"timeout_ms"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Scan     Scan     `yaml:"scan"`
	Feed     Feed     `yaml:"feed"`
	Account  Account  `yaml:"account"`
	Gates    Gates    `yaml:"gates"`
	Strategy Strategy `yaml:"strategy"`
	Sinks    Sinks    `yaml:"sinks"`
}

// Load reads a YAML file from disk, hydrates a Config struct, and overlays
// credentials and webhook URLs from the environment.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	config.applyEnv()
	return config, nil
}

// Default returns a Config populated with safe defaults for everything except
// credentials.
func Default() *Config {
	return &Config{
		App: App{
			Name:        "futures-alert-bot",
			Env:         "dev",
			ListenAddr:  ":8080",
			MetricsAddr: ":9090",
			LogLevel:    "info",
		},
		Scan: Scan{
			Symbol:          "MNQ/USD",
			DisplaySymbol:   "MNQ",
			IntervalMs:      120000,
			LookbackMinutes: 60,
			MinBars:         20,
			SessionTZ:       "America/New_York",
		},
		Feed: Feed{Provider: "alpaca"},
		Account: Account{
			Size:        25000,
			RiskPercent: 0.01,
			PointValue:  2,
		},
		Gates: Gates{
			CalendarURL:    "https://nfs.faireconomy.media/ff_calendar_thisweek.json",
			SentimentURL:   "https://api.alternative.me/fng/",
			NewsWindowSecs: 900,
			FearFloor:      20,
			GreedCeiling:   80,
			TimeoutMs:      5000,
		},
		Strategy: Strategy{
			ORBOpenBars:      5,
			ORBWindowMinutes: 60,
			BreakoutLookback: 15,
			VolumeLookback:   20,
			VolumeMult:       1.5,
			StopClampMin:     3,
			StopClampMax:     10,
		},
		Sinks: Sinks{TimeoutMs: 5000},
	}
}

// applyEnv overlays secrets and destinations that never live in the YAML file.
func (c *Config) applyEnv() {
	c.Feed.APIKey = envDefault("ALPACA_API_KEY", c.Feed.APIKey)
	c.Feed.APISecret = envDefault("ALPACA_SECRET_KEY", c.Feed.APISecret)
	c.Sinks.DiscordWebhook = envDefault("DISCORD_WEBHOOK_URL", c.Sinks.DiscordWebhook)
	c.Sinks.SheetsWebhook = envDefault("SHEETS_WEBHOOK_URL", c.Sinks.SheetsWebhook)
	c.Sinks.TelegramToken = envDefault("TELEGRAM_TOKEN", c.Sinks.TelegramToken)
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Sinks.TelegramChatID = id
		}
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.Scan.Symbol = v
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
