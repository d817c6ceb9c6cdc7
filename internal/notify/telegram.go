package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// Telegram mirrors the alert as a plain-text chat message. The bot handle is
// nil when no token is configured, which turns Send into a no-op.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram builds the sink. An empty token disables it without error; a
// non-empty token that fails authentication is reported to the caller.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" {
		return &Telegram{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Name returns the sink label used in logs and metrics.
func (t *Telegram) Name() string { return "telegram" }

// Send pushes a one-line summary to the configured chat.
func (t *Telegram) Send(_ context.Context, alert signal.TradeAlert) error {
	if t == nil || t.bot == nil {
		return nil
	}
	text := fmt.Sprintf(
		"%s %s %s | entry %.1f stop %.1f | %d contracts ($%.2f risk)",
		directionMark(alert.Direction), alert.Direction, alert.Symbol,
		alert.Entry, alert.StopPrice(), alert.Contracts, alert.RiskAmount,
	)
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func directionMark(d signal.Direction) string {
	if d == signal.Short {
		return "🔴"
	}
	return "🟢"
}
