package main

import (
	"context"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ikickm2025/futures-alert-bot/internal/config"
	"github.com/ikickm2025/futures-alert-bot/internal/gates"
	"github.com/ikickm2025/futures-alert-bot/internal/market"
	"github.com/ikickm2025/futures-alert-bot/internal/metrics"
	"github.com/ikickm2025/futures-alert-bot/internal/notify"
	"github.com/ikickm2025/futures-alert-bot/internal/risk"
	"github.com/ikickm2025/futures-alert-bot/internal/scanner"
	"github.com/ikickm2025/futures-alert-bot/internal/strategy"
	"github.com/ikickm2025/futures-alert-bot/internal/util"
)

func main() {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "internal/config/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Str("path", path).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)

	loc, err := time.LoadLocation(cfg.Scan.SessionTZ)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Scan.SessionTZ).Msg("load session timezone")
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source := market.New(market.Settings{
		Provider:  cfg.Feed.Provider,
		BaseURL:   cfg.Feed.BaseURL,
		APIKey:    cfg.Feed.APIKey,
		APISecret: cfg.Feed.APISecret,
		Symbol:    cfg.Scan.Symbol,
		Capacity:  cfg.Scan.LookbackMinutes * 2,
	}, log)
	if runner, ok := source.(market.Runner); ok {
		go func() {
			if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("bar stream stopped")
				cancel()
			}
		}()
	}

	gateTimeout := time.Duration(cfg.Gates.TimeoutMs) * time.Millisecond
	calendar := gates.NewCalendar(cfg.Gates.CalendarURL,
		time.Duration(cfg.Gates.NewsWindowSecs)*time.Second, gateTimeout, log)
	sentiment := gates.NewSentiment(cfg.Gates.SentimentURL,
		cfg.Gates.FearFloor, cfg.Gates.GreedCeiling, gateTimeout, log)

	chain := strategy.NewChain(cfg.Scan.Symbol, strategy.Params{
		MinBars:          cfg.Scan.MinBars,
		ORBOpenBars:      cfg.Strategy.ORBOpenBars,
		ORBWindowMinutes: cfg.Strategy.ORBWindowMinutes,
		BreakoutLookback: cfg.Strategy.BreakoutLookback,
		VolumeLookback:   cfg.Strategy.VolumeLookback,
		VolumeMult:       cfg.Strategy.VolumeMult,
	}, loc)

	telegram, err := notify.NewTelegram(cfg.Sinks.TelegramToken, cfg.Sinks.TelegramChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram sink")
	}
	fanout := notify.NewFanout(log, time.Duration(cfg.Sinks.TimeoutMs)*time.Millisecond,
		notify.NewDiscord(cfg.Sinks.DiscordWebhook),
		notify.NewSheets(cfg.Sinks.SheetsWebhook),
		telegram,
	)

	scan := scanner.New(
		scanner.Options{
			Symbol:        cfg.Scan.Symbol,
			DisplaySymbol: cfg.Scan.DisplaySymbol,
			Lookback:      time.Duration(cfg.Scan.LookbackMinutes) * time.Minute,
			Interval:      time.Duration(cfg.Scan.IntervalMs) * time.Millisecond,
			Location:      loc,
		},
		scanner.Deps{
			Log:       log,
			Source:    source,
			Calendar:  calendar,
			Sentiment: sentiment,
			Chain:     chain,
			Sizer: risk.Sizer{
				AccountSize: cfg.Account.Size,
				RiskPercent: cfg.Account.RiskPercent,
				PointValue:  cfg.Account.PointValue,
				ClampMin:    cfg.Strategy.StopClampMin,
				ClampMax:    cfg.Strategy.StopClampMax,
			},
			Fanout: fanout,
		},
	)

	srv := scanner.NewServer(cfg.App.ListenAddr, scan, log)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("control server stopped")
			cancel()
		}
	}()

	go func() { _ = scan.Run(ctx) }()

	log.Info().Str("symbol", cfg.Scan.Symbol).Str("provider", cfg.Feed.Provider).Msg("scanner started")
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
